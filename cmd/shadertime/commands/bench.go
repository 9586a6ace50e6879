package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/shadertime/internal/app"
)

func (c *CLI) newBenchCmd() *cobra.Command {
	var opts app.RunOptions

	cmd := &cobra.Command{
		Use:   "bench [shader]",
		Short: "Repeatedly compile a shader and report per-call timing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Shader = args[0]
			}
			return c.app.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Repetitions, "repetitions", "r", 0, "Number of timed compile calls (default from config, 128)")
	cmd.Flags().BoolVar(&opts.EnableGLSL, "enable-glsl", false, "Enable the backend's GLSL compatibility mode")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Disable the module cache and resolve every request from disk")

	return cmd
}

package fs

import (
	"context"

	"github.com/grindlemire/graft"
)

const (
	// StoreNodeID is the unique identifier for the source store Graft node.
	StoreNodeID graft.ID = "adapter.fs.store"
)

func init() {
	// Concrete type: the app also needs FindSource, which is not part of
	// the SourceStore port.
	graft.Register(graft.Node[*Store]{
		ID:        StoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Store, error) {
			return NewStore(), nil
		},
	})
}

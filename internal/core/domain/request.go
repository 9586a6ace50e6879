package domain

import "strings"

// ModuleSuffix is the reserved path suffix a compiler session appends when it
// asks the resolver for the precompiled form of a source file instead of its
// raw text. "foo.slang-module" means "a compiled module built from foo.slang".
// The convention assumes no legitimate source file name ends in this suffix.
const ModuleSuffix = "-module"

// RequestKind distinguishes the two kinds of file request multiplexed onto
// the resolver's single path namespace.
type RequestKind int

const (
	// RequestSourceFile asks for a file's bytes verbatim.
	RequestSourceFile RequestKind = iota
	// RequestPrecompiledModule asks for the compiled, serialized form of a
	// source file.
	RequestPrecompiledModule
)

// Request is a classified resolver request. Classification happens once at
// the resolver boundary so cache layers never re-derive it from string
// inspection.
type Request struct {
	Kind RequestKind
	// Path is the normalized request path as issued (including the module
	// suffix for precompiled-module requests). It is the cache key.
	Path string
	// SourcePath is the underlying source file path: equal to Path for
	// source-file requests, Path minus the module suffix otherwise.
	SourcePath string
}

// ClassifyRequest classifies a normalized path into a Request.
func ClassifyRequest(path string) Request {
	if strings.HasSuffix(path, ModuleSuffix) {
		return Request{
			Kind:       RequestPrecompiledModule,
			Path:       path,
			SourcePath: strings.TrimSuffix(path, ModuleSuffix),
		}
	}
	return Request{Kind: RequestSourceFile, Path: path, SourcePath: path}
}

package ports

import "go.trai.ch/shadertime/internal/core/domain"

// FileResolver answers file requests issued by a compiler session during
// import resolution. Returned blobs are retained on behalf of the caller;
// the caller owns that reference and releases it when done, and may hold it
// for an arbitrary duration.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type FileResolver interface {
	// LoadFile resolves path to a blob. A missing file is reported as
	// domain.ErrFileNotFound; any other error aborts the compile.
	LoadFile(path string) (*domain.Blob, error)

	// SetSearchRoot sets the directory relative paths resolve against. It is
	// called once per top-level compile, before the session starts.
	SetSearchRoot(dir string)
}

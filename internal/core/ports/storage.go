package ports

// SourceStore is the external storage layer the cache filesystem reads
// source files from. It exists as a port so tests can count and fail reads.
//
//go:generate mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks
type SourceStore interface {
	// ReadFile returns the file's contents, or domain.ErrFileNotFound when
	// the path does not exist.
	ReadFile(path string) ([]byte, error)
}

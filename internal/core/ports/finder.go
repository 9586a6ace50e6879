package ports

// SourceFinder locates a source file by trying the working directory and a
// bounded number of parent directories.
//
//go:generate mockgen -source=finder.go -destination=mocks/mock_finder.go -package=mocks
type SourceFinder interface {
	// FindSource returns the path that resolved and the file's contents.
	FindSource(name string, maxParents int) (string, []byte, error)
}

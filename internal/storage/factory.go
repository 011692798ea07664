package storage

// NewStore creates a flat-file store rooted in dataDir
func NewStore(dataDir string) (Store, error) {
	return NewFileStore(dataDir)
}

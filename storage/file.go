package storage

import (
	"context"
	"os"
	"path/filepath"
)

// FileSource reads observation documents from a local data directory, the
// same layout the collector writes: aggregated.json with the full history,
// latest.json with the most recent scrape.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) Name() string {
	return "file:" + s.dir
}

func (s *FileSource) FetchAggregated(ctx context.Context) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, "aggregated.json"))
}

func (s *FileSource) FetchLatest(ctx context.Context) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, "latest.json"))
}

package forecast

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// FileSource reads a saved Open-Meteo hourly response from disk. The location
// passed to Fetch is ignored.
type FileSource struct {
	path string
}

// NewFileSource returns a source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Name() string { return "file:" + f.path }

func (f *FileSource) Fetch(ctx context.Context, _ Location) (Series, error) {
	if err := ctx.Err(); err != nil {
		return Series{}, err
	}
	fh, err := os.Open(f.path)
	if err != nil {
		return Series{}, err
	}
	defer fh.Close()

	s, err := decodeHourly(fh)
	if err != nil {
		return Series{}, fmt.Errorf("%s: %w", f.path, err)
	}
	return s, nil
}

func init() {
	Register("file", func(cfg map[string]string) (Source, error) {
		path := cfg["path"]
		if path == "" {
			return nil, errors.New("file source requires a path")
		}
		return NewFileSource(path), nil
	})
}

package document

import (
	"fmt"
	"os"

	"github.com/corey/hobis/internal/domain/isotope"
	"github.com/corey/hobis/internal/ports"
)

var _ ports.Source = (*FileSource)(nil)

// FileSource loads datasets from an interchange document on disk. The file is
// re-read on every Load.
type FileSource struct {
	Path   string
	Format Format // FormatAuto infers from the extension, then the content
}

// Load reads and decodes the file.
func (s *FileSource) Load() ([]isotope.Dataset, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	format := s.Format
	if format == FormatAuto {
		format = FormatFromPath(s.Path)
	}
	ds, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return ds, nil
}

// Describe returns the file path.
func (s *FileSource) Describe() string { return s.Path }

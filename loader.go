package coinjar

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// LoadFile decodes the ledger file at path.
func LoadFile(path string, opts Options) (*Journal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()

	j, err := Decode(f, opts)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	return j, nil
}

// LoadOrCreate is like LoadFile but returns an empty journal when the file
// does not exist yet.
func LoadOrCreate(path string, opts Options) (*Journal, error) {
	j, err := LoadFile(path, opts)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("ledger file %q does not exist, starting an empty ledger", path)
		return NewJournal(opts), nil
	}
	return j, err
}

// FileSaver writes journals in canonical form to a file. The file is replaced
// atomically: a failed save leaves the previous content in place.
type FileSaver struct {
	Path    string
	Encoder Encoder
}

func (s FileSaver) String() string { return s.Path }

// Save writes j to a temporary file next to Path and renames it over Path.
func (s FileSaver) Save(j *Journal) (err error) {
	dir, base := filepath.Split(s.Path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temporary file for %q: %w", s.Path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := s.Encoder.Encode(tmp, j); err != nil {
		return fmt.Errorf("could not encode ledger %q: %w", s.Path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("could not sync ledger %q: %w", s.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close ledger %q: %w", s.Path, err)
	}
	mode := fs.FileMode(0o644)
	if info, statErr := os.Stat(s.Path); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("could not set mode of ledger %q: %w", s.Path, err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("could not replace ledger %q: %w", s.Path, err)
	}
	log.Printf("ledger saved to %q", s.Path)
	return nil
}

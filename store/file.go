package store

import (
	"context"
	"fmt"
	"os"

	"github.com/etnz/spend"
)

// File stores the ledger as a JSON document on disk.
//
// Every Save truncates and rewrites the whole file, there is no protection
// against a crash in the middle of a write.
type File struct {
	path string
}

// NewFile returns a File store at 'path'.
func NewFile(path string) *File { return &File{path: path} }

func (s *File) String() string { return s.path }

// Load decodes the document. A missing file returns an error wrapping
// fs.ErrNotExist.
func (s *File) Load(_ context.Context) (*spend.Ledger, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := spend.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("error decoding %q: %w", s.path, err)
	}
	return l, nil
}

// Save overwrites the document with 'l'.
func (s *File) Save(_ context.Context, l *spend.Ledger) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", s.path, err)
	}
	if err := spend.EncodeLedger(f, l); err != nil {
		f.Close()
		return fmt.Errorf("error writing ledger file %q: %w", s.path, err)
	}
	return f.Close()
}

// Close does nothing, files are only open during Load and Save.
func (s *File) Close() error { return nil }

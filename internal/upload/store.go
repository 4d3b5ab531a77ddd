package upload

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrTooLarge is returned when an uploaded file exceeds the store's size limit
var ErrTooLarge = errors.New("uploaded file exceeds size limit")

// Store writes request-scoped uploads into a temporary directory.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore creates the upload directory if needed
func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

// MaxBytes returns the per-file size limit
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// File is an uploaded file on disk. Callers must Remove it when done.
type File struct {
	Path         string
	OriginalName string
	Size         int64
}

// Save copies a multipart file into the upload directory under a unique name
// that keeps the original extension.
func (s *Store) Save(header *multipart.FileHeader) (*File, error) {
	if header.Size > s.maxBytes {
		return nil, ErrTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("image-%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), strings.ToLower(filepath.Ext(header.Filename)))
	path := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}

	n, copyErr := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	closeErr := dst.Close()
	switch {
	case copyErr != nil:
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write upload file: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write upload file: %w", closeErr)
	case n > s.maxBytes:
		_ = os.Remove(path)
		return nil, ErrTooLarge
	}

	return &File{Path: path, OriginalName: header.Filename, Size: n}, nil
}

// Read returns the file contents
func (f *File) Read() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload file: %w", err)
	}
	return data, nil
}

// Remove deletes the file. Removing an already deleted file is not an error.
func (f *File) Remove() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove upload file: %w", err)
	}
	return nil
}

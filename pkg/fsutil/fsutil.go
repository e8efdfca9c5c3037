// Package fsutil provides the file system primitives evergreen uses to read
// markdown sources and write rendered output safely.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilSource is returned when a nil Source is passed.
	ErrNilSource = errors.New("nil source")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// Source captures a markdown file as it was read, so a later check can
// tell whether it changed while its output was being rendered.
type Source struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [32]byte
}

// ReadSource reads a file and records its state.
func ReadSource(ctx context.Context, path string) ([]byte, *Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read source: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &Source{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// Changed reports whether the file differs from src. Size and modification
// time are compared first; the content hash settles the rest. A deleted
// file counts as changed.
func Changed(ctx context.Context, src *Source) (bool, error) {
	if src == nil {
		return false, ErrNilSource
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check changed: %w", err)
	}

	stat, err := os.Stat(src.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", src.Path, err)
	}

	if !stat.ModTime().Equal(src.ModTime) || stat.Size() != src.Size {
		return true, nil
	}

	content, err := os.ReadFile(src.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", src.Path, err)
	}
	return sha256.Sum256(content) != src.Hash, nil
}

// OutputPath returns the rendered file path for a markdown source: the
// source's extension is replaced by ext.
func OutputPath(source, ext string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ext
}

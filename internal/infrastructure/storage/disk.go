// Package storage implements the ports.BlobStore contract on the local
// filesystem. Files are written under a configured directory and addressed by
// a URL path the HTTP layer serves statically.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put stores the stream under a unique name derived from the original
// filename and returns the public URL.
func (s *DiskStore) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	// Strip any path components the client smuggled into the filename.
	base := filepath.Base(name)
	stored := uuid.New().String() + "-" + base

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	return s.baseURL + "/" + stored, nil
}

// Delete removes the file behind a URL previously returned by Put. Unknown
// URLs outside the store's base are rejected.
func (s *DiskStore) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return fmt.Errorf("url %q not managed by this store", url)
	}
	name := filepath.Base(strings.TrimPrefix(url, s.baseURL+"/"))
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

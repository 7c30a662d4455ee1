// Package local is a filesystem blob store: bytes land under a root
// directory and are addressed by URLs below a configured public base
// (served as static files by the HTTP layer).
package local

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrForeignURL = errors.New("url does not belong to this store")

type Store struct {
	root    string
	baseURL string
}

// New creates the root directory if needed. baseURL is the public prefix,
// e.g. "/uploads" or "https://cdn.example.com/uploads".
func New(root, baseURL string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &Store{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *Store) Root() string { return s.root }

func (s *Store) Put(ctx context.Context, path string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel, err := s.cleanPath(path)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/" + rel, nil
}

func (s *Store) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return ErrForeignURL
	}
	rel, err := s.cleanPath(strings.TrimPrefix(url, s.baseURL+"/"))
	if err != nil {
		return err
	}
	return os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
}

// cleanPath normalizes a storage path and rejects anything escaping the root.
func (s *Store) cleanPath(p string) (string, error) {
	rel := filepath.ToSlash(filepath.Clean("/" + p))[1:]
	if rel == "" || rel == "." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("invalid blob path %q", p)
	}
	return rel, nil
}

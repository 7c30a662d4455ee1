package blobmock

import (
	"context"
	"sync"

	"protrack-backend/internal/domain/blob"
)

var _ blob.Store = (*Store)(nil)

// Store is an in-memory blob store. PutFn/DeleteFn override behavior when a
// test needs a failure; otherwise puts are recorded and "succeed".
type Store struct {
	PutFn    func(ctx context.Context, path string, data []byte) (string, error)
	DeleteFn func(ctx context.Context, url string) error

	mu      sync.Mutex
	Puts    []string
	Deletes []string
}

func (m *Store) Put(ctx context.Context, path string, data []byte) (string, error) {
	if m.PutFn != nil {
		return m.PutFn(ctx, path, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	url := "https://blob.test/" + path
	m.Puts = append(m.Puts, url)
	return url, nil
}

func (m *Store) Delete(ctx context.Context, url string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, url)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes = append(m.Deletes, url)
	return nil
}

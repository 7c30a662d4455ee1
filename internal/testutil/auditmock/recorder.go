package auditmock

import (
	"context"
	"sync"

	"protrack-backend/internal/domain/audit"
)

var (
	_ audit.Recorder = (*Recorder)(nil)
	_ audit.Reader   = (*Recorder)(nil)
)

// Recorder collects entries in memory so tests can assert on what was
// audited (or that nothing was). It also serves as a Reader, like the
// production trail.
type Recorder struct {
	ListFn func(ctx context.Context, limit, offset int) ([]audit.Entry, error)

	mu      sync.Mutex
	Entries []audit.Entry
}

func (m *Recorder) Record(_ context.Context, e audit.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, e)
}

func (m *Recorder) List(ctx context.Context, limit, offset int) ([]audit.Entry, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]audit.Entry, len(m.Entries))
	copy(out, m.Entries)
	return out, nil
}

func (m *Recorder) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		out = append(out, e.Action)
	}
	return out
}

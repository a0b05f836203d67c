package scenario

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/minecalc/internal/mining"
)

// MemoryStore keeps saved scenarios in a mutex-guarded slice.
type MemoryStore struct {
	mu      sync.RWMutex
	items   []Saved
	counter int64
	now     func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (m *MemoryStore) Save(ctx context.Context, name string, in mining.Inputs, rep mining.Report) (Saved, error) {
	if err := ctx.Err(); err != nil {
		return Saved{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.counter++
	s := Saved{
		ID:      uuid.New(),
		Seq:     m.counter,
		Name:    resolveName(name, m.counter),
		SavedAt: m.now().UTC(),
		Inputs:  in,
		Outputs: OutputsFrom(rep),
	}
	m.items = append(m.items, s)
	return s, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]Saved, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Saved, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.items = nil
	m.mu.Unlock()
	return nil
}

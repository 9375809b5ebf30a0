package store

import (
	"context"
	"sync"

	"github.com/yungbote/gradecalc/internal/state"
)

// MemoryStore keeps both records in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	savePref *bool
	blob     []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (state.State, bool, error) {
	if err := ctx.Err(); err != nil {
		return state.State{}, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	st, found := restore(nil, m.savePref, m.blob)
	return st, found, nil
}

func (m *MemoryStore) Save(ctx context.Context, st state.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var blob []byte
	if st.SaveEnabled {
		b, err := encodeState(st)
		if err != nil {
			return err
		}
		blob = b
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pref := st.SaveEnabled
	m.savePref = &pref
	m.blob = blob
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savePref = nil
	m.blob = nil
	return nil
}

func (m *MemoryStore) Close() error { return nil }

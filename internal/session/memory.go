package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore is the single-process fallback used when Redis is not
// available.  Sessions are stored encoded so callers never share state
// with the store, and expire after the idle TTL like their Redis
// counterparts.
type MemoryStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	items  map[string]memoryItem
	locked map[string]bool
}

type memoryItem struct {
	raw     []byte
	expires time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:    ttl,
		now:    time.Now,
		items:  make(map[string]memoryItem),
		locked: make(map[string]bool),
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok || m.now().After(it.expires) {
		delete(m.items, id)
		return nil, ErrNotFound
	}
	var s Session
	if err := json.Unmarshal(it.raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	s.UpdatedAt = m.now().UTC()
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[s.ID] = memoryItem{raw: raw, expires: m.now().Add(m.ttl)}
	m.sweep()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryStore) Lock(_ context.Context, id string) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked[id] {
		return nil, ErrLocked
	}
	m.locked[id] = true
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.locked, id)
			m.mu.Unlock()
		})
	}, nil
}

// sweep drops expired sessions.  Callers hold mu.
func (m *MemoryStore) sweep() {
	now := m.now()
	for id, it := range m.items {
		if now.After(it.expires) {
			delete(m.items, id)
		}
	}
}

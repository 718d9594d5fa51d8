package state

import (
	"context"
	"strings"
	"sync"
	"time"

	contractx "github.com/wanderstay/concierge/agent/contract"
)

// MemoryStore keeps sessions in process memory, keyed by identity. Lookups
// for an unknown identity initialize an empty session rather than erroring.
// Durability is the process lifetime; the contract only mandates isolation.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

var _ contractx.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

func (m *MemoryStore) History(ctx context.Context, identity string) ([]contractx.Turn, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, ErrInvalidIdentity
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[identity].CloneTurns(), nil
}

func (m *MemoryStore) Append(ctx context.Context, identity string, turns ...contractx.Turn) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return ErrInvalidIdentity
	}
	if len(turns) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[identity]
	if !ok {
		created, err := NewSession(identity, m.now())
		if err != nil {
			return err
		}
		sess = created
		m.sessions[identity] = sess
	}
	return sess.Append(m.now(), turns...)
}

func (m *MemoryStore) Reset(ctx context.Context, identity string) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return ErrInvalidIdentity
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, identity)
	return nil
}

package token

import (
	"context"
	"sync"
	"time"

	"dutyfree-pos/internal/domain"
)

type memoryRepo struct {
	mu     sync.RWMutex
	tokens map[string]Token
	now    func() time.Time
}

// NewMemory keeps tokens in process memory; they do not survive a restart.
func NewMemory() Repository {
	return &memoryRepo{
		tokens: make(map[string]Token),
		now:    time.Now,
	}
}

func (m *memoryRepo) Save(_ context.Context, token Token) error {
	m.mu.Lock()
	m.tokens[token.TerminalID] = token
	m.mu.Unlock()
	return nil
}

func (m *memoryRepo) Get(_ context.Context, terminalID string) (*Token, error) {
	m.mu.RLock()
	t, ok := m.tokens[terminalID]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	if t.Expired(m.now()) {
		m.mu.Lock()
		delete(m.tokens, terminalID)
		m.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *memoryRepo) Delete(_ context.Context, terminalID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[terminalID]; !ok {
		return domain.ErrNotFound
	}
	delete(m.tokens, terminalID)
	return nil
}

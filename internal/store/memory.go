package store

import (
	"context"
	"sync"
	"time"

	"portal_creditos/internal/model"
)

// MemoryTokenStore es la implementación en memoria. Los tokens pendientes se
// pierden al reiniciar el proceso; para durabilidad se usa RedisTokenStore,
// el contrato es el mismo.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]model.ResetToken
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		tokens: make(map[string]model.ResetToken),
	}
}

func (s *MemoryTokenStore) Put(_ context.Context, record model.ResetToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[record.Token] = record
	return nil
}

func (s *MemoryTokenStore) Get(_ context.Context, token string) (*model.ResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.tokens[token]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &record, nil
}

func (s *MemoryTokenStore) Remove(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

// Consume hace el check-and-delete dentro de una sola sección crítica, así dos
// llamadas concurrentes sobre el mismo token nunca ganan las dos.
func (s *MemoryTokenStore) Consume(_ context.Context, token string) (*model.ResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.tokens[token]
	if !ok {
		return nil, model.ErrNotFound
	}
	delete(s.tokens, token)
	return &record, nil
}

func (s *MemoryTokenStore) SweepExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for token, record := range s.tokens {
		if record.Expired(now) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed, nil
}

// Len devuelve la cantidad de tokens pendientes. Solo se usa en tests y métricas.
func (s *MemoryTokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

package storage

import (
	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps the token in process memory only.
// This should be used only for testing and one-off invocations.
type MemoryStore struct {
	entries *cache.Cache
}

// NewMemoryStore constructs and returns a new MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: cache.New(cache.NoExpiration, 0),
	}
}

// Close ...
func (s *MemoryStore) Close() error {
	s.entries.Flush()
	return nil
}

// GetToken ...
func (s *MemoryStore) GetToken() (string, error) {
	val, found := s.entries.Get(TokenKey)
	if !found {
		return "", ErrTokenNotFound
	}
	return val.(string), nil
}

// SetToken ...
func (s *MemoryStore) SetToken(token string) error {
	s.entries.Set(TokenKey, token, cache.NoExpiration)
	return nil
}

// DelToken ...
func (s *MemoryStore) DelToken() error {
	s.entries.Delete(TokenKey)
	return nil
}

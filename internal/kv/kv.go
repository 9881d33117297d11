// Package kv provides the per-visitor key/value storage the assignment
// engine and reporter write through. A Store plays the role of one
// visitor's persistent scope: in-memory for tests and ephemeral runs,
// Badger for CLI state, cookies on the server.
package kv

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("not found")

// Store is a string key/value scope for a single visitor.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Memory is a mutex-guarded in-process Store.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// Snapshot returns a copy of the current contents.
func (s *Memory) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.m))
	for k, v := range s.m {
		out[k] = v
	}
	return out
}

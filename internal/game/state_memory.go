package game

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

var ErrSessionNotFound = errors.New("session not found")

type MemoryStateRepo struct {
	mu       sync.RWMutex
	sessions map[string]State
}

func NewMemoryStateRepo() *MemoryStateRepo {
	return &MemoryStateRepo{sessions: map[string]State{}}
}

func (r *MemoryStateRepo) Get(ctx context.Context, id string) (State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s.Clone(), nil
}

func (r *MemoryStateRepo) Update(ctx context.Context, s State) error {
	if s.ID == "" {
		return errors.New("state id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *MemoryStateRepo) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.sessions)), nil
}

func (r *MemoryStateRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	return nil
}

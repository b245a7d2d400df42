package store

import (
	"sync"

	"github.com/luminaflow/studio-go/pkg/types"
)

// Store wraps the current snapshot behind a lock so HTTP handlers can share
// it. Readers take the snapshot once and work against that consistent view;
// writers build a successor snapshot and swap it in atomically.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
}

// New creates a store with an empty snapshot.
func New() *Store {
	return &Store{current: NewSnapshot()}
}

// Current returns the snapshot at this instant.
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Insert adds a workflow at the front of the collection.
func (s *Store) Insert(w *types.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.current.Insert(w)
	if err != nil {
		return err
	}
	s.current = next
	return nil
}

// Update replaces an existing workflow.
func (s *Store) Update(w *types.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.current.Update(w)
	if err != nil {
		return err
	}
	s.current = next
	return nil
}

// Select moves the active pointer.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.current.Select(id)
	if err != nil {
		return err
	}
	s.current = next
	return nil
}

// InsertAndSelect adds a workflow and makes it active in one swap, so no
// reader can observe the insert without the selection.
func (s *Store) InsertAndSelect(w *types.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.current.Insert(w)
	if err != nil {
		return err
	}
	next, err = next.Select(w.ID)
	if err != nil {
		return err
	}
	s.current = next
	return nil
}

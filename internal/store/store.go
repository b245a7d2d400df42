// Package store holds the in-memory collection of workflows. It is the
// single source of truth consulted by every view.
package store

import (
	"errors"

	"github.com/luminaflow/studio-go/pkg/types"
)

// Common errors returned by store operations.
var (
	ErrWorkflowNotFound = errors.New("workflow not found")
	ErrWorkflowExists   = errors.New("workflow already exists")
)

// Snapshot is an immutable view of the collection plus the active-workflow
// pointer. Mutating operations return a new snapshot; the receiver stays
// valid and unchanged, so a view holding an older snapshot during a
// concurrent update never sees a torn state.
type Snapshot struct {
	workflows []*types.Workflow // newest first
	activeID  string
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

func (s *Snapshot) indexOf(id string) int {
	for i, w := range s.workflows {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// Insert prepends a workflow and returns the resulting snapshot.
// Returns ErrWorkflowExists if the id is already present.
func (s *Snapshot) Insert(w *types.Workflow) (*Snapshot, error) {
	if s.indexOf(w.ID) >= 0 {
		return nil, ErrWorkflowExists
	}

	next := make([]*types.Workflow, 0, len(s.workflows)+1)
	next = append(next, w.Clone())
	next = append(next, s.workflows...)

	return &Snapshot{workflows: next, activeID: s.activeID}, nil
}

// Update replaces the workflow with the same id, preserving its position.
// Returns ErrWorkflowNotFound if the id is absent.
func (s *Snapshot) Update(w *types.Workflow) (*Snapshot, error) {
	i := s.indexOf(w.ID)
	if i < 0 {
		return nil, ErrWorkflowNotFound
	}

	next := make([]*types.Workflow, len(s.workflows))
	copy(next, s.workflows)
	next[i] = w.Clone()

	return &Snapshot{workflows: next, activeID: s.activeID}, nil
}

// Select moves the active pointer to the given workflow.
// Returns ErrWorkflowNotFound if the id is absent.
func (s *Snapshot) Select(id string) (*Snapshot, error) {
	if s.indexOf(id) < 0 {
		return nil, ErrWorkflowNotFound
	}
	return &Snapshot{workflows: s.workflows, activeID: id}, nil
}

// Get returns a copy of the workflow with the given id, or nil if absent.
func (s *Snapshot) Get(id string) *types.Workflow {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	return s.workflows[i].Clone()
}

// ActiveWorkflow returns a copy of the workflow the active pointer refers
// to, or nil when the pointer is unset or stale.
func (s *Snapshot) ActiveWorkflow() *types.Workflow {
	if s.activeID == "" {
		return nil
	}
	return s.Get(s.activeID)
}

// ActiveID returns the active pointer, which may be empty.
func (s *Snapshot) ActiveID() string {
	return s.activeID
}

// List returns copies of all workflows in insertion order, newest first.
func (s *Snapshot) List() []*types.Workflow {
	out := make([]*types.Workflow, len(s.workflows))
	for i, w := range s.workflows {
		out[i] = w.Clone()
	}
	return out
}

// Len returns the number of workflows in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.workflows)
}

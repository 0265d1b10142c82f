package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/jsontree/pkg/errors"
	"github.com/matzehuels/jsontree/pkg/tree"
	"github.com/matzehuels/jsontree/pkg/workspace"
)

// Store keeps workspaces in memory, keyed by a random UUID. Nothing is
// written to disk; a restart loses every workspace.
type Store struct {
	layout tree.Options
	view   workspace.ViewOptions
	max    int           // 0 means unlimited
	ttl    time.Duration // 0 means entries never expire
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	ws       *workspace.Workspace
	lastUsed time.Time
}

// NewStore creates an empty store. New workspaces use layout and view.
// When max workspaces exist, creating another evicts the least recently
// used one.
func NewStore(layout tree.Options, view workspace.ViewOptions, maxEntries int, ttl time.Duration) *Store {
	return &Store{
		layout:  layout,
		view:    view,
		max:     maxEntries,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Create adds an empty workspace and returns its id.
func (s *Store) Create() (string, *workspace.Workspace) {
	id := uuid.NewString()
	ws := workspace.New(s.layout, s.view)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.max > 0 && len(s.entries) >= s.max {
		s.evictOldest()
	}
	s.entries[id] = &entry{ws: ws, lastUsed: s.now()}
	return id, ws
}

// Get returns the workspace with id and marks it as used.
func (s *Store) Get(id string) (*workspace.Workspace, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.New(errors.ErrCodeNotFound, "workspace %q not found", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || s.expired(e) {
		delete(s.entries, id)
		return nil, errors.New(errors.ErrCodeNotFound, "workspace %q not found", id)
	}
	e.lastUsed = s.now()
	return e.ws, nil
}

// Delete removes a workspace.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return errors.New(errors.ErrCodeNotFound, "workspace %q not found", id)
	}
	delete(s.entries, id)
	return nil
}

// Cleanup removes expired workspaces and returns how many were removed.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

// Len returns the number of live workspaces.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) expired(e *entry) bool {
	return s.ttl > 0 && s.now().Sub(e.lastUsed) > s.ttl
}

func (s *Store) evictOldest() {
	var oldest string
	var at time.Time
	for id, e := range s.entries {
		if oldest == "" || e.lastUsed.Before(at) {
			oldest, at = id, e.lastUsed
		}
	}
	delete(s.entries, oldest)
}

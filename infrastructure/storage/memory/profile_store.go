package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/merchantlab/consult-go/domain/profile"
)

// ProfileStore is an in-memory implementation of profile.Store. A
// single store-wide lock serializes updates; profile writes are rare
// enough that finer locking buys nothing.
type ProfileStore struct {
	docs map[string]map[string]any
	mu   sync.Mutex
}

// NewProfileStore creates an empty in-memory profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		docs: make(map[string]map[string]any),
	}
}

// Seed inserts or replaces a profile.
func (s *ProfileStore) Seed(p *profile.Profile) error {
	doc, err := profile.EncodeDoc(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[p.ID] = doc
	return nil
}

// Get loads a profile by identifier.
func (s *ProfileStore) Get(_ context.Context, id string) (*profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", profile.ErrNotFound, id)
	}
	return profile.DecodeDoc(id, doc)
}

// Update merges patch into the field at section.key.
func (s *ProfileStore) Update(_ context.Context, id, section, key string, patch any) (*profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", profile.ErrNotFound, id)
	}
	updated, err := profile.ApplyUpdate(doc, section, key, patch)
	if err != nil {
		return nil, err
	}
	s.docs[id] = updated
	return profile.DecodeDoc(id, updated)
}

// List returns all stored profile identifiers.
func (s *ProfileStore) List(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

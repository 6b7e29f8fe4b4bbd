package store

import (
	"context"
	"sync"

	"github.com/xxxsen/draftpad/internal/model"
	appErr "github.com/xxxsen/draftpad/internal/pkg/errors"
)

type memoryStore struct {
	mu        sync.RWMutex
	draft     model.Draft
	revisions []model.Revision
}

func init() {
	Register("memory", createMemoryStore)
}

func createMemoryStore(args interface{}) (Store, error) {
	_ = args
	return NewMemory(), nil
}

// NewMemory returns an empty in-memory store. Used by tests and ephemeral
// runs; contents are lost on close.
func NewMemory() Store {
	return &memoryStore{}
}

func (s *memoryStore) Current(ctx context.Context) (*model.Draft, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft := s.draft
	return &draft, nil
}

func (s *memoryStore) SaveRevision(ctx context.Context, draft *model.Draft, rev *model.Revision) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = *draft
	s.revisions = append([]model.Revision{*rev}, s.revisions...)
	return nil
}

func (s *memoryStore) Revisions(ctx context.Context) ([]model.Revision, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.Revision, len(s.revisions))
	copy(result, s.revisions)
	return result, nil
}

func (s *memoryStore) Revision(ctx context.Context, id string) (*model.Revision, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.revisions {
		if s.revisions[i].ID == id {
			rev := s.revisions[i]
			return &rev, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (s *memoryStore) Close() error {
	return nil
}

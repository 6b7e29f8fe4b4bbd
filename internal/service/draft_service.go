package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/draftpad/internal/diff"
	"github.com/xxxsen/draftpad/internal/model"
	appErr "github.com/xxxsen/draftpad/internal/pkg/errors"
	"github.com/xxxsen/draftpad/internal/pkg/timeutil"
	"github.com/xxxsen/draftpad/internal/store"
)

// IDSource mints an opaque unique token per revision.
type IDSource func() string

// Clock supplies the save timestamp; injected so the revision builder is
// deterministic under test.
type Clock func() time.Time

type DraftService struct {
	store store.Store
	ids   IDSource
	clock Clock
	cache *expirable.LRU[string, *model.Revision]
}

func NewDraftService(st store.Store, ids IDSource, clock Clock, cacheSize int, cacheTTL time.Duration) *DraftService {
	if ids == nil {
		ids = newID
	}
	if clock == nil {
		clock = time.Now
	}
	s := &DraftService{store: st, ids: ids, clock: clock}
	if cacheSize > 0 && cacheTTL > 0 {
		s.cache = expirable.NewLRU[string, *model.Revision](cacheSize, nil, cacheTTL)
	}
	return s
}

func (s *DraftService) Get(ctx context.Context) (*model.Draft, error) {
	return s.store.Current(ctx)
}

// Save replaces the draft with text and mints a revision describing the
// word-level delta. A byte-identical submission stores nothing and returns
// a nil revision. A whitespace-only edit still mints a revision; its word
// lists are simply empty.
func (s *DraftService) Save(ctx context.Context, text string) (*model.Revision, error) {
	current, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}
	if text == current.Content {
		return nil, nil
	}

	added, removed := diff.Words(diff.Fields(current.Content), diff.Fields(text))
	now := s.clock()
	rev := &model.Revision{
		ID:           s.ids(),
		SavedAt:      timeutil.FormatMinute(now),
		Ctime:        now.Unix(),
		AddedWords:   added,
		RemovedWords: removed,
		OldLength:    utf8.RuneCountInString(current.Content),
		NewLength:    utf8.RuneCountInString(text),
	}
	draft := &model.Draft{Content: text, Mtime: now.Unix()}
	if err := s.store.SaveRevision(ctx, draft, rev); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Add(rev.ID, rev)
	}
	logutil.GetLogger(ctx).Info("draft saved",
		zap.String("revision_id", rev.ID),
		zap.Int("added_words", len(rev.AddedWords)),
		zap.Int("removed_words", len(rev.RemovedWords)),
		zap.Int("old_length", rev.OldLength),
		zap.Int("new_length", rev.NewLength),
	)
	return rev, nil
}

func (s *DraftService) ListRevisions(ctx context.Context) ([]model.Revision, error) {
	return s.store.Revisions(ctx)
}

// GetRevision serves by-ID lookups through the cache when one is
// configured; revisions are immutable, so entries only ever expire.
func (s *DraftService) GetRevision(ctx context.Context, id string) (*model.Revision, error) {
	if id == "" {
		return nil, appErr.ErrInvalid
	}
	if s.cache != nil {
		if rev, ok := s.cache.Get(id); ok {
			return rev, nil
		}
	}
	rev, err := s.store.Revision(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Add(id, rev)
	}
	return rev, nil
}

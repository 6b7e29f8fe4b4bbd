// Package store persists the current draft snapshot and its revision
// history. Backings are registered by name and selected through config.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xxxsen/draftpad/internal/config"
	"github.com/xxxsen/draftpad/internal/model"
)

type Store interface {
	// Current returns the stored snapshot; an empty draft when nothing has
	// been saved yet.
	Current(ctx context.Context) (*model.Draft, error)
	// SaveRevision replaces the snapshot and prepends rev to the history.
	SaveRevision(ctx context.Context, draft *model.Draft, rev *model.Revision) error
	// Revisions lists all revision records, newest first.
	Revisions(ctx context.Context) ([]model.Revision, error)
	// Revision returns one record by ID, errors.ErrNotFound when unknown.
	Revision(ctx context.Context, id string) (*model.Revision, error)
	Close() error
}

type Factory func(args interface{}) (Store, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func Register(name string, factory Factory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registryMu.Lock()
	registry[key] = factory
	registryMu.Unlock()
}

func New(cfg config.StoreConfig) (Store, error) {
	key := strings.ToLower(strings.TrimSpace(cfg.Type))
	if key == "" {
		return nil, fmt.Errorf("store.type is required")
	}
	registryMu.RLock()
	factory := registry[key]
	registryMu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}
	return factory(cfg.Data)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("store config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode store config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode store config: %w", err)
	}
	return nil
}

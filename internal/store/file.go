package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xxxsen/draftpad/internal/model"
	appErr "github.com/xxxsen/draftpad/internal/pkg/errors"
)

type fileConfig struct {
	Path string `json:"path"`
}

// fileRecord is the single flat JSON document on disk: the snapshot plus
// the full revision list, newest first.
type fileRecord struct {
	Content   string           `json:"content"`
	Mtime     int64            `json:"mtime"`
	Revisions []model.Revision `json:"revisions"`
}

type fileStore struct {
	path string

	// guards the in-memory record and file rewrites; does not make the
	// caller's read-modify-write sequence atomic.
	mu     sync.RWMutex
	record fileRecord
}

func init() {
	Register("file", createFileStore)
}

func createFileStore(args interface{}) (Store, error) {
	config := &fileConfig{}
	if err := decodeConfig(args, config); err != nil {
		return nil, err
	}
	if config.Path == "" {
		return nil, fmt.Errorf("file store path is required")
	}
	return OpenFile(config.Path)
}

// OpenFile loads the record at path, starting empty when the file does not
// exist yet.
func OpenFile(path string) (Store, error) {
	s := &fileStore{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.record); err != nil {
			return nil, fmt.Errorf("decode store file: %w", err)
		}
	}
	return s, nil
}

func (s *fileStore) Current(ctx context.Context) (*model.Draft, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &model.Draft{Content: s.record.Content, Mtime: s.record.Mtime}, nil
}

func (s *fileStore) SaveRevision(ctx context.Context, draft *model.Draft, rev *model.Revision) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fileRecord{
		Content:   draft.Content,
		Mtime:     draft.Mtime,
		Revisions: append([]model.Revision{*rev}, s.record.Revisions...),
	}
	if err := s.write(next); err != nil {
		return err
	}
	s.record = next
	return nil
}

func (s *fileStore) Revisions(ctx context.Context) ([]model.Revision, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.Revision, len(s.record.Revisions))
	copy(result, s.record.Revisions)
	return result, nil
}

func (s *fileStore) Revision(ctx context.Context, id string) (*model.Revision, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.record.Revisions {
		if s.record.Revisions[i].ID == id {
			rev := s.record.Revisions[i]
			return &rev, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (s *fileStore) Close() error {
	return nil
}

// write rewrites the whole record through a temp file and rename so a
// crash mid-write cannot leave a truncated document behind.
func (s *fileStore) write(record fileRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".draftpad-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close store file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

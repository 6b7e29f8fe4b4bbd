package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/didi/gendry/builder"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/xxxsen/draftpad/internal/model"
	"github.com/xxxsen/draftpad/internal/pkg/dbutil"
	appErr "github.com/xxxsen/draftpad/internal/pkg/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const draftRowID = 1

type sqlConfig struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

type sqlStore struct {
	db *sql.DB
}

func init() {
	Register("sql", createSQLStore)
}

func createSQLStore(args interface{}) (Store, error) {
	config := &sqlConfig{}
	if err := decodeConfig(args, config); err != nil {
		return nil, err
	}
	return OpenSQL(config.Driver, config.DSN)
}

// OpenSQL opens a database-backed store. driver is "sqlite" (DSN is a file
// path) or "postgres" (DSN is a connection string).
func OpenSQL(driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("sql store driver must be sqlite or postgres, got %q", driver)
	}
	if dsn == "" {
		return nil, fmt.Errorf("sql store dsn is required")
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return &sqlStore{db: db}, nil
}

func applyMigrations(db *sql.DB) error {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	for _, file := range files {
		content, err := fs.ReadFile(migrationsFS, "migrations/"+file)
		if err != nil {
			return err
		}
		for _, q := range strings.Split(string(content), ";") {
			q = strings.TrimSpace(q)
			if q == "" {
				continue
			}
			if _, err := db.Exec(q); err != nil {
				return fmt.Errorf("execute query in %s: %w", file, err)
			}
		}
	}
	return nil
}

func (s *sqlStore) Current(ctx context.Context) (*model.Draft, error) {
	where := map[string]interface{}{
		"id": draftRowID,
	}
	sqlStr, args, err := builder.BuildSelect("draft", where, []string{"content", "mtime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return &model.Draft{}, rows.Err()
	}
	var draft model.Draft
	if err := rows.Scan(&draft.Content, &draft.Mtime); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *sqlStore) SaveRevision(ctx context.Context, draft *model.Draft, rev *model.Revision) error {
	seq, err := s.nextSeq(ctx)
	if err != nil {
		return err
	}
	added, err := json.Marshal(rev.AddedWords)
	if err != nil {
		return err
	}
	removed, err := json.Marshal(rev.RemovedWords)
	if err != nil {
		return err
	}
	data := map[string]interface{}{
		"id":            rev.ID,
		"seq":           seq,
		"saved_at":      rev.SavedAt,
		"ctime":         rev.Ctime,
		"added_words":   string(added),
		"removed_words": string(removed),
		"old_length":    rev.OldLength,
		"new_length":    rev.NewLength,
	}
	sqlStr, args, err := builder.BuildInsert("revisions", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}

	upsert := `INSERT INTO draft (id, content, mtime) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET content = excluded.content, mtime = excluded.mtime`
	upsert, upsertArgs := dbutil.Finalize(upsert, []interface{}{draftRowID, draft.Content, draft.Mtime})
	_, err = s.db.ExecContext(ctx, upsert, upsertArgs...)
	return err
}

func (s *sqlStore) nextSeq(ctx context.Context) (int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM revisions`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rows.Close() }()
	var current int64
	if rows.Next() {
		if err := rows.Scan(&current); err != nil {
			return 0, err
		}
	}
	return current + 1, rows.Err()
}

var revisionColumns = []string{"id", "saved_at", "ctime", "added_words", "removed_words", "old_length", "new_length"}

func (s *sqlStore) Revisions(ctx context.Context) ([]model.Revision, error) {
	where := map[string]interface{}{
		"_orderby": "seq desc",
	}
	sqlStr, args, err := builder.BuildSelect("revisions", where, revisionColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	revisions := make([]model.Revision, 0)
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, *rev)
	}
	return revisions, rows.Err()
}

func (s *sqlStore) Revision(ctx context.Context, id string) (*model.Revision, error) {
	where := map[string]interface{}{
		"id": id,
	}
	sqlStr, args, err := builder.BuildSelect("revisions", where, revisionColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanRevision(rows)
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

func scanRevision(rows *sql.Rows) (*model.Revision, error) {
	var rev model.Revision
	var added, removed string
	if err := rows.Scan(&rev.ID, &rev.SavedAt, &rev.Ctime, &added, &removed, &rev.OldLength, &rev.NewLength); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(added), &rev.AddedWords); err != nil {
		return nil, fmt.Errorf("decode added_words: %w", err)
	}
	if err := json.Unmarshal([]byte(removed), &rev.RemovedWords); err != nil {
		return nil, fmt.Errorf("decode removed_words: %w", err)
	}
	return &rev, nil
}

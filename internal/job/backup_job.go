package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xxxsen/draftpad/internal/backup"
	"github.com/xxxsen/draftpad/internal/model"
	"github.com/xxxsen/draftpad/internal/store"
)

// BackupJob exports the full store as one JSON object per run. Write-only
// redundancy; restoring from a backup is a manual operation.
type BackupJob struct {
	store  store.Store
	target backup.Target
}

type backupExport struct {
	ExportedAt string           `json:"exported_at"`
	Draft      *model.Draft     `json:"draft"`
	Revisions  []model.Revision `json:"revisions"`
}

func NewBackupJob(st store.Store, target backup.Target) *BackupJob {
	return &BackupJob{store: st, target: target}
}

func (j *BackupJob) Name() string {
	return "store_backup"
}

func (j *BackupJob) Run(ctx context.Context) error {
	if j.store == nil || j.target == nil {
		return nil
	}
	draft, err := j.store.Current(ctx)
	if err != nil {
		return err
	}
	revisions, err := j.store.Revisions(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	export := backupExport{
		ExportedAt: now.Format(time.RFC3339),
		Draft:      draft,
		Revisions:  revisions,
	}
	data, err := json.Marshal(export)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("draftpad-%s.json", now.Format("20060102-1504"))
	return j.target.Put(ctx, key, data)
}

package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tarsobcaldas/storage-control/internal/model"
)

// fileRepository keeps one JSON document per snapshot in a directory, named
// <snapshot>.json.
type fileRepository struct {
	dir string
}

func NewFileRepository(dir string) *fileRepository {
	return &fileRepository{dir: dir}
}

func (r *fileRepository) path(name string) string {
	return filepath.Join(r.dir, name+".json")
}

func (r *fileRepository) Save(_ context.Context, snap *Snapshot) error {
	const op = "snapshot.file.Save"

	if snap == nil || snap.Name == "" {
		return fmt.Errorf("%s: %w: empty snapshot name", op, model.ErrInvalidArgument)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.WriteFile(r.path(snap.Name), data, 0o644); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *fileRepository) Load(_ context.Context, name string) (*Snapshot, error) {
	const op = "snapshot.file.Load"

	data, err := os.ReadFile(r.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w: %q", op, model.ErrSnapshotNotFound, name)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &snap, nil
}

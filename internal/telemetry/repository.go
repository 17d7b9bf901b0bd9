package telemetry

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/HarwaniDev/activity-tracker/internal/errors"
	"github.com/HarwaniDev/activity-tracker/internal/logger"
)

type Repository interface {
	Store(ctx context.Context, snapshot *SessionSnapshot) error
	Sessions(ctx context.Context) ([]SessionSnapshot, error)
	Close() error
}

type sqliteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewRepository(cfg Config) (Repository, error) {
	if cfg.DBPath == "" {
		return nil, errors.New(ErrInvalidDBPath)
	}

	logger.Debug().Str("path", cfg.DBPath).Msg("initializing telemetry repository")

	// Ensure the directory exists
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, defaultDirPerm); err != nil {
			return nil, errors.Wrap(ErrStorageInit, err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, errors.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errors.Wrap(ErrStorageInit, err)
	}

	return &sqliteRepository{
		db: db,
	}, nil
}

func (r *sqliteRepository) Store(ctx context.Context, snapshot *SessionSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO sessions (
            id, task_name, started_at, stopped_at, sample_count, output_path
        ) VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            stopped_at = excluded.stopped_at,
            sample_count = excluded.sample_count,
            output_path = excluded.output_path
    `,
		snapshot.ID,
		snapshot.TaskName,
		snapshot.StartedAt.Unix(),
		snapshot.StoppedAt.Unix(),
		snapshot.SampleCount,
		snapshot.OutputPath,
	)
	if err != nil {
		return errors.Wrap(ErrStorageAccess, err)
	}

	return nil
}

func (r *sqliteRepository) Sessions(ctx context.Context) ([]SessionSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, `
        SELECT id, task_name, started_at, stopped_at, sample_count, output_path
        FROM sessions ORDER BY started_at
    `)
	if err != nil {
		return nil, errors.Wrap(ErrStorageAccess, err)
	}
	defer rows.Close()

	var snapshots []SessionSnapshot
	for rows.Next() {
		var snapshot SessionSnapshot
		var startedAt, stoppedAt int64
		if err := rows.Scan(&snapshot.ID, &snapshot.TaskName, &startedAt, &stoppedAt,
			&snapshot.SampleCount, &snapshot.OutputPath); err != nil {
			return nil, errors.Wrap(ErrStorageAccess, err)
		}
		snapshot.StartedAt = time.Unix(startedAt, 0)
		snapshot.StoppedAt = time.Unix(stoppedAt, 0)
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(ErrStorageAccess, err)
	}

	return snapshots, nil
}

func (r *sqliteRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Close(); err != nil {
		return errors.Wrap(ErrStorageClose, err)
	}
	return nil
}

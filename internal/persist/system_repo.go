package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// SystemRow is one registered system as recorded at boot.
type SystemRow struct {
	Name         string
	Capabilities []string
}

// BootRecord is the set of systems a server instance registered.
type BootRecord struct {
	BootID     int64
	ServerName string
	BootedAt   time.Time
	Systems    []SystemRow
}

type SystemRepo struct {
	db *DB
}

func NewSystemRepo(db *DB) *SystemRepo {
	return &SystemRepo{db: db}
}

// RecordBoot writes rec and its systems in a single transaction and
// returns the assigned boot id.
func (r *SystemRepo) RecordBoot(ctx context.Context, rec BootRecord) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("boot begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var bootID int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO system_boot (server_name) VALUES ($1) RETURNING boot_id`,
		rec.ServerName,
	).Scan(&bootID); err != nil {
		return 0, fmt.Errorf("boot insert: %w", err)
	}

	batch := &pgx.Batch{}
	for i, s := range rec.Systems {
		batch.Queue(
			`INSERT INTO system_boot_entry (boot_id, position, name, capabilities)
			 VALUES ($1, $2, $3, $4)`,
			bootID, i, s.Name, s.Capabilities,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("boot entries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("boot commit: %w", err)
	}
	return bootID, nil
}

// LastBoot loads the most recent boot record, or nil if none exists.
func (r *SystemRepo) LastBoot(ctx context.Context) (*BootRecord, error) {
	rec := &BootRecord{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT boot_id, server_name, booted_at FROM system_boot
		 ORDER BY boot_id DESC LIMIT 1`,
	).Scan(&rec.BootID, &rec.ServerName, &rec.BootedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT name, capabilities FROM system_boot_entry
		 WHERE boot_id = $1 ORDER BY position`, rec.BootID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s SystemRow
		if err := rows.Scan(&s.Name, &s.Capabilities); err != nil {
			return nil, err
		}
		rec.Systems = append(rec.Systems, s)
	}
	return rec, rows.Err()
}

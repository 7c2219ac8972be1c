package auditlog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrStoreUnavailable indicates the audit store dependency is not configured.
var ErrStoreUnavailable = errors.New("auditlog: store unavailable")

// Entry is one persisted calculation: the request and the computed result,
// kept for audit. The calculator never reads entries back.
type Entry struct {
	ID               uuid.UUID `json:"id"`
	Amount           float64   `json:"amount"`
	Mode             string    `json:"mode"`
	AppliedRate      float64   `json:"applied_rate"`
	NetAmount        float64   `json:"net_amount"`
	GSTAmount        float64   `json:"gst_amount"`
	GrossAmount      float64   `json:"gross_amount"`
	Description      *string   `json:"description,omitempty"`
	DetectedCategory *string   `json:"detected_category,omitempty"`
	Source           string    `json:"source"`
	CreatedAt        time.Time `json:"created_at"`
}

// Store provides database accessors for the calculation log.
type Store interface {
	InsertCalculation(ctx context.Context, entry Entry) (uuid.UUID, error)
	ListCalculations(ctx context.Context, limit, offset int) ([]Entry, error)
	CountCalculations(ctx context.Context) (int64, error)
	PurgeCalculationsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewStore constructs a Store backed by a pgx connection pool.
func NewStore(pool *pgxpool.Pool) Store {
	return &pgStore{pool: pool}
}

type pgStore struct {
	pool *pgxpool.Pool
}

// InsertCalculation appends one calculation record and returns its identifier.
func (s *pgStore) InsertCalculation(ctx context.Context, entry Entry) (uuid.UUID, error) {
	if s == nil || s.pool == nil {
		return uuid.Nil, ErrStoreUnavailable
	}
	id := entry.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	var description, detected any
	if entry.Description != nil {
		description = *entry.Description
	}
	if entry.DetectedCategory != nil {
		detected = *entry.DetectedCategory
	}
	err := s.pool.QueryRow(ctx, `INSERT INTO gst_calculations
(id, amount, mode, applied_rate, net_amount, gst_amount, gross_amount, description, detected_category, source)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		id, entry.Amount, entry.Mode, entry.AppliedRate, entry.NetAmount, entry.GSTAmount,
		entry.GrossAmount, description, detected, entry.Source).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// ListCalculations returns recent entries, newest first.
func (s *pgStore) ListCalculations(ctx context.Context, limit, offset int) ([]Entry, error) {
	if s == nil || s.pool == nil {
		return nil, ErrStoreUnavailable
	}
	rows, err := s.pool.Query(ctx, `SELECT id, amount, mode, applied_rate, net_amount, gst_amount,
gross_amount, description, detected_category, source, created_at
FROM gst_calculations ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.Amount, &entry.Mode, &entry.AppliedRate,
			&entry.NetAmount, &entry.GSTAmount, &entry.GrossAmount,
			&entry.Description, &entry.DetectedCategory, &entry.Source, &entry.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

// CountCalculations returns the total number of stored entries.
func (s *pgStore) CountCalculations(ctx context.Context) (int64, error) {
	if s == nil || s.pool == nil {
		return 0, ErrStoreUnavailable
	}
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM gst_calculations`).Scan(&count)
	return count, err
}

// PurgeCalculationsBefore deletes entries created before the cutoff and
// reports how many rows were removed.
func (s *pgStore) PurgeCalculationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if s == nil || s.pool == nil {
		return 0, ErrStoreUnavailable
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM gst_calculations WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

package category

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrStoreUnavailable indicates the category store dependency is not configured.
var ErrStoreUnavailable = errors.New("category: store unavailable")

// Store provides database accessors for category records.
type Store interface {
	ListCategories(ctx context.Context) ([]Category, error)
	InsertCategory(ctx context.Context, cat Category) (Category, error)
}

// NewStore constructs a Store backed by a pgx connection pool.
func NewStore(pool *pgxpool.Pool) Store {
	return &pgStore{pool: pool}
}

type pgStore struct {
	pool *pgxpool.Pool
}

// ListCategories returns every category in insertion order. Detection relies
// on this ordering being stable across calls.
func (s *pgStore) ListCategories(ctx context.Context) ([]Category, error) {
	if s == nil || s.pool == nil {
		return nil, ErrStoreUnavailable
	}
	rows, err := s.pool.Query(ctx, `SELECT id, name, rate, keywords, active, created_at
FROM gst_categories ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Rate, &cat.Keywords, &cat.Active, &cat.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, cat)
	}
	return result, rows.Err()
}

// InsertCategory persists a category and returns the stored record.
func (s *pgStore) InsertCategory(ctx context.Context, cat Category) (Category, error) {
	if s == nil || s.pool == nil {
		return Category{}, ErrStoreUnavailable
	}
	if cat.ID == uuid.Nil {
		cat.ID = uuid.New()
	}
	var createdAt time.Time
	err := s.pool.QueryRow(ctx, `INSERT INTO gst_categories (id, name, rate, keywords, active)
VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		cat.ID, cat.Name, cat.Rate, cat.Keywords, cat.Active).Scan(&createdAt)
	if err != nil {
		return Category{}, err
	}
	cat.CreatedAt = createdAt
	return cat, nil
}

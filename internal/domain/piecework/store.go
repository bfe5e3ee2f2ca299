package piecework

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// ListCompleted returns the pieces a worker finished in one month.
func (s *Store) ListCompleted(ctx context.Context, workerID, month string) ([]LineItem, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, label, to_char(completed_at, 'YYYY-MM-DD')
    FROM completed_works
    WHERE worker_id = $1 AND to_char(completed_at, 'YYYY-MM') = $2
    ORDER BY completed_at, label
  `, workerID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		var item LineItem
		if err := rows.Scan(&item.ID, &item.Label, &item.CompletedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

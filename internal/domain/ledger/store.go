package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrEntryNotFound = errors.New("journal entry not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Query returns the journal slice for one branch and coarse type, oldest
// first. Entries come back exactly as written; nothing is interpreted here.
func (s *Store) Query(ctx context.Context, branch, entryType string) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, branch, type, category, description, amount,
           to_char(entry_date, 'YYYY-MM-DD'), COALESCE(notes, ''), created_at
    FROM expenses
    WHERE branch = $1 AND type = $2
    ORDER BY entry_date, created_at
  `, branch, entryType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.Branch, &entry.Type, &entry.Category,
			&entry.Description, &entry.Amount, &entry.EntryDate, &entry.Notes, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Append inserts one new entry and returns it with its assigned ID and
// creation time. This is the journal's only mutation.
func (s *Store) Append(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO expenses (id, branch, type, category, description, amount, entry_date, notes)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING created_at
  `, entry.ID, entry.Branch, entry.Type, entry.Category, entry.Description,
		entry.Amount, entry.EntryDate, nullIfEmpty(entry.Notes)).Scan(&entry.CreatedAt)
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	var entry Entry
	err := s.DB.QueryRow(ctx, `
    SELECT id, branch, type, category, description, amount,
           to_char(entry_date, 'YYYY-MM-DD'), COALESCE(notes, ''), created_at
    FROM expenses
    WHERE id = $1
  `, id).Scan(&entry.ID, &entry.Branch, &entry.Type, &entry.Category,
		&entry.Description, &entry.Amount, &entry.EntryDate, &entry.Notes, &entry.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrEntryNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Summarize totals expenses by coarse type for a branch and date range,
// for the accounting overview screens.
func (s *Store) Summarize(ctx context.Context, branch, startDate, endDate string) (Summary, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT type, COALESCE(SUM(amount), 0)
    FROM expenses
    WHERE branch = $1 AND entry_date >= $2 AND entry_date <= $3
    GROUP BY type
  `, branch, startDate, endDate)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()

	summary := Summary{
		Branch:       branch,
		StartDate:    startDate,
		EndDate:      endDate,
		TotalsByType: map[string]float64{},
	}
	for rows.Next() {
		var entryType string
		var total float64
		if err := rows.Scan(&entryType, &total); err != nil {
			return Summary{}, err
		}
		summary.TotalsByType[entryType] = total
		summary.TotalExpenses += total
	}
	return summary, rows.Err()
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

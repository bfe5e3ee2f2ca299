package payroll

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pref remembers the operator's last-used scheme and base salary for a
// worker so the next month's form starts prefilled.
type Pref struct {
	WorkerID   string  `json:"workerId"`
	PayScheme  string  `json:"payScheme"`
	BaseSalary float64 `json:"baseSalary"`
}

type PrefStore struct {
	DB *pgxpool.Pool
}

func NewPrefStore(db *pgxpool.Pool) *PrefStore {
	return &PrefStore{DB: db}
}

// Get returns the stored preference, or a zero Pref when the worker has
// never been settled.
func (s *PrefStore) Get(ctx context.Context, workerID string) (Pref, error) {
	pref := Pref{WorkerID: workerID}
	err := s.DB.QueryRow(ctx,
		`SELECT pay_scheme, base_salary FROM worker_prefs WHERE worker_id = $1`,
		workerID,
	).Scan(&pref.PayScheme, &pref.BaseSalary)
	if err == pgx.ErrNoRows {
		return Pref{WorkerID: workerID}, nil
	}
	if err != nil {
		return Pref{}, err
	}
	return pref, nil
}

func (s *PrefStore) Put(ctx context.Context, pref Pref) error {
	_, err := s.DB.Exec(ctx,
		`INSERT INTO worker_prefs (worker_id, pay_scheme, base_salary, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (worker_id)
		 DO UPDATE SET pay_scheme = EXCLUDED.pay_scheme, base_salary = EXCLUDED.base_salary, updated_at = now()`,
		pref.WorkerID, pref.PayScheme, pref.BaseSalary,
	)
	return err
}

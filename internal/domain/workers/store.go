package workers

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrEmptyName = errors.New("worker name is required")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// ListDirectory returns the active workers of one specialty from the
// external worker directory. The directory table is read-only here.
func (s *Store) ListDirectory(ctx context.Context, specialty string) ([]Identity, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, full_name, COALESCE(specialty, '')
    FROM workers
    WHERE is_active = true AND specialty = $1
    ORDER BY full_name
  `, specialty)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Identity
	for rows.Next() {
		var identity Identity
		if err := rows.Scan(&identity.ID, &identity.Name, &identity.Specialty); err != nil {
			return nil, err
		}
		identity.Active = true
		identity.Origin = OriginDirectory
		identity.CanPieceRate = true
		out = append(out, identity)
	}
	return out, rows.Err()
}

func (s *Store) ListLocal(ctx context.Context) ([]Identity, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, full_name
    FROM local_workers
    ORDER BY full_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Identity
	for rows.Next() {
		var identity Identity
		if err := rows.Scan(&identity.ID, &identity.Name); err != nil {
			return nil, err
		}
		identity.Active = true
		identity.Origin = OriginLocal
		out = append(out, identity)
	}
	return out, rows.Err()
}

func (s *Store) AddLocal(ctx context.Context, name string) (Identity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Identity{}, ErrEmptyName
	}
	id := uuid.NewString()
	if _, err := s.DB.Exec(ctx, `
    INSERT INTO local_workers (id, full_name)
    VALUES ($1,$2)
  `, id, name); err != nil {
		return Identity{}, err
	}
	return Identity{ID: id, Name: name, Active: true, Origin: OriginLocal}, nil
}

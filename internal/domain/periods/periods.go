// Package periods manages named evaluation cycles and the single active
// period selected per tenant. Every other domain takes the period as an
// explicit argument; nothing reads the active period ambiently.
package periods

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoActivePeriod = errors.New("no active period configured")

type Period struct {
	Name     string     `json:"name"`
	Deadline *time.Time `json:"deadline,omitempty"`
	Active   bool       `json:"active"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Active returns the tenant's active period name, or ErrNoActivePeriod when
// the setting is absent. Callers must not guess a default.
func (s *Store) Active(ctx context.Context, tenantID string) (string, error) {
	var name string
	err := s.DB.QueryRow(ctx, `
    SELECT setting_value FROM app_settings
    WHERE tenant_id = $1 AND setting_key = 'active_period'
  `, tenantID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNoActivePeriod
	}
	return name, err
}

func (s *Store) List(ctx context.Context, tenantID string) ([]Period, error) {
	active, err := s.Active(ctx, tenantID)
	if err != nil && !errors.Is(err, ErrNoActivePeriod) {
		return nil, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT name, deadline FROM periods
    WHERE tenant_id = $1
    ORDER BY name DESC
  `, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Period
	for rows.Next() {
		var p Period
		if err := rows.Scan(&p.Name, &p.Deadline); err != nil {
			return nil, err
		}
		p.Active = p.Name == active
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Deadline(ctx context.Context, tenantID, name string) (*time.Time, error) {
	var deadline *time.Time
	err := s.DB.QueryRow(ctx, `
    SELECT deadline FROM periods WHERE tenant_id = $1 AND name = $2
  `, tenantID, name).Scan(&deadline)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return deadline, err
}

// Activate upserts the period and flips the active_period setting in one
// transaction. Draft records of the previous period are left untouched;
// they stay reachable through explicit period selection.
func (s *Store) Activate(ctx context.Context, tenantID, name string, deadline *time.Time) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO periods (tenant_id, name, deadline)
    VALUES ($1,$2,$3)
    ON CONFLICT (tenant_id, name) DO UPDATE SET deadline = EXCLUDED.deadline
  `, tenantID, name, deadline); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO app_settings (tenant_id, setting_key, setting_value)
    VALUES ($1, 'active_period', $2)
    ON CONFLICT (tenant_id, setting_key) DO UPDATE SET setting_value = EXCLUDED.setting_value
  `, tenantID, name); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Package audit keeps an append-only trail of who did what. Writes are
// best-effort from handlers; a failed audit insert is logged, never
// propagated to the caller.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"talent/internal/platform/requestctx"
)

type Event struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"-"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username,omitempty"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Record stamps the event with the request id already carried in ctx.
func (s *Store) Record(ctx context.Context, tenantID, userID, action, details string) {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (tenant_id, user_id, action, details, request_id)
    VALUES ($1,$2,$3,$4,$5)
  `, tenantID, userID, action, details, requestctx.GetRequestID(ctx))
	if err != nil {
		slog.Error("audit write failed", "action", action, "err", err)
	}
}

type Filter struct {
	UserID string
	Action string
	Limit  int
}

func (s *Store) List(ctx context.Context, tenantID string, filter Filter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := s.DB.Query(ctx, `
    SELECT ae.id, ae.user_id, COALESCE(u.username, ''), ae.action, COALESCE(ae.details, ''),
           COALESCE(ae.request_id, ''), ae.created_at
    FROM audit_events ae
    LEFT JOIN users u ON ae.user_id = u.id
    WHERE ae.tenant_id = $1
      AND ($2 = '' OR ae.user_id::text = $2)
      AND ($3 = '' OR ae.action = $3)
    ORDER BY ae.created_at DESC
    LIMIT $4
  `, tenantID, filter.UserID, filter.Action, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Username, &ev.Action, &ev.Details, &ev.RequestID, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

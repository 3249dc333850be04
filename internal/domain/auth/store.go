package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type Credential struct {
	ID         string
	TenantID   string
	Username   string
	RoleID     string
	RoleName   string
	Department string
	Password   string
}

func (s *Store) FindActiveUserByUsername(ctx context.Context, username string) (Credential, error) {
	var out Credential
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, u.tenant_id, u.username, u.role_id, r.name, COALESCE(u.department, ''), u.password_hash
    FROM users u
    JOIN roles r ON u.role_id = r.id
    WHERE u.username = $1 AND u.status = 'active'
  `, username).Scan(&out.ID, &out.TenantID, &out.Username, &out.RoleID, &out.RoleName, &out.Department, &out.Password)
	return out, err
}

func (s *Store) HasPermission(ctx context.Context, roleID, permission string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM role_permissions rp
    JOIN permissions p ON rp.permission_id = p.id
    WHERE rp.role_id = $1 AND p.key = $2
  `, roleID, permission).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateSession(ctx context.Context, userID, tokenHash string, expires time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO sessions (user_id, token_hash, expires_at)
    VALUES ($1,$2,$3)
  `, userID, tokenHash, expires)
	return err
}

func (s *Store) RevokeSession(ctx context.Context, userID, tokenHash string) error {
	_, err := s.DB.Exec(ctx, "UPDATE sessions SET revoked_at = now() WHERE user_id = $1 AND token_hash = $2", userID, tokenHash)
	return err
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login = now() WHERE id = $1", userID)
	return err
}

func (s *Store) UpdateUserPassword(ctx context.Context, tenantID, username, hash string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "UPDATE users SET password_hash = $1 WHERE tenant_id = $2 AND username = $3", hash, tenantID, username)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) RoleIDByName(ctx context.Context, tenantID, roleName string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "SELECT id FROM roles WHERE tenant_id = $1 AND name = $2", tenantID, roleName).Scan(&id)
	return id, err
}

type UserSummary struct {
	Username   string `json:"username"`
	RoleName   string `json:"role"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

func (s *Store) ListUsers(ctx context.Context, tenantID string) ([]UserSummary, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT u.username, r.name, COALESCE(u.department, ''), u.status
    FROM users u
    JOIN roles r ON u.role_id = r.id
    WHERE u.tenant_id = $1
    ORDER BY u.username
  `, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UserSummary
	for rows.Next() {
		var user UserSummary
		if err := rows.Scan(&user.Username, &user.RoleName, &user.Department, &user.Status); err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

package authhandler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"talent/internal/domain/audit"
	"talent/internal/domain/auth"
	"talent/internal/platform/backup"
	"talent/internal/platform/requestctx"
	"talent/internal/transport/http/api"
	"talent/internal/transport/http/middleware"
	"talent/internal/transport/http/shared"
)

const sessionTTL = 8 * time.Hour

type Handler struct {
	Store   *auth.Store
	Secret  string
	Audit   *audit.Store
	Backups *backup.Service
}

func NewHandler(store *auth.Store, secret string, auditStore *audit.Store, backups *backup.Service) *Handler {
	return &Handler{Store: store, Secret: secret, Audit: auditStore, Backups: backups}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/logout", h.handleLogout)
	r.Post("/auth/change-password", h.handleChangePassword)
	r.Get("/auth/me", h.handleMe)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("username", payload.Username, "username is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, reqID) {
		return
	}

	cred, err := h.Store.FindActiveUserByUsername(r.Context(), payload.Username)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
		return
	}
	if err := auth.CheckPassword(cred.Password, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID:   cred.ID,
		TenantID: cred.TenantID,
		RoleID:   cred.RoleID,
		RoleName: cred.RoleName,
	}, sessionTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", reqID)
		return
	}

	if err := h.Store.CreateSession(r.Context(), cred.ID, auth.HashToken(token), time.Now().Add(sessionTTL)); err != nil {
		api.Fail(w, http.StatusInternalServerError, "session_error", "failed to start session", reqID)
		return
	}
	if err := h.Store.UpdateLastLogin(r.Context(), cred.ID); err != nil {
		slog.Warn("last login update failed", "userId", cred.ID, "err", err)
	}

	h.Audit.Record(r.Context(), cred.TenantID, cred.ID, "auth.login", "user "+cred.Username+" signed in")

	if cred.RoleName == auth.RoleHR || cred.RoleName == auth.RoleAdmin {
		go h.autoBackup(cred.TenantID)
	}

	api.Success(w, map[string]any{
		"token":    token,
		"role":     cred.RoleName,
		"username": cred.Username,
	}, reqID)
}

// autoBackup runs detached from the login request; a snapshot failure must
// not affect the sign-in.
func (h *Handler) autoBackup(tenantID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	name, err := h.Backups.Snapshot(ctx, tenantID, backup.KindAuto)
	if err != nil {
		slog.Error("auto backup failed", "tenantId", tenantID, "err", err)
		return
	}
	slog.Info("auto backup written", "tenantId", tenantID, "file", name)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > 7 {
		if err := h.Store.RevokeSession(r.Context(), user.UserID, auth.HashToken(authHeader[7:])); err != nil {
			slog.Warn("session revoke failed", "userId", user.UserID, "err", err)
		}
	}
	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "auth.logout", "")
	api.Success(w, map[string]string{"status": "logged out"}, reqID)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("currentPassword", payload.CurrentPassword, "current password is required")
	if len(payload.NewPassword) < 8 {
		v.Add("newPassword", "must be at least 8 characters")
	}
	if v.Reject(w, reqID) {
		return
	}

	var username, hash string
	err := h.Store.DB.QueryRow(r.Context(),
		"SELECT username, password_hash FROM users WHERE id = $1 AND tenant_id = $2",
		user.UserID, user.TenantID).Scan(&username, &hash)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "user not found", reqID)
		return
	}
	if err := auth.CheckPassword(hash, payload.CurrentPassword); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "current password does not match", reqID)
		return
	}

	newHash, err := auth.HashPassword(payload.NewPassword)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "hash_error", "failed to hash password", reqID)
		return
	}
	if _, err := h.Store.UpdateUserPassword(r.Context(), user.TenantID, username, newHash); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_error", "failed to update password", reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "auth.password_change", "")
	api.Success(w, map[string]string{"status": "password updated"}, reqID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	api.Success(w, map[string]string{
		"userId": user.UserID,
		"role":   user.RoleName,
	}, reqID)
}

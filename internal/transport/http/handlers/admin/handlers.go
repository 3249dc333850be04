package adminhandler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"talent/internal/domain/audit"
	"talent/internal/domain/auth"
	"talent/internal/platform/backup"
	"talent/internal/platform/requestctx"
	"talent/internal/transport/http/api"
	"talent/internal/transport/http/middleware"
	"talent/internal/transport/http/shared"
)

type Handler struct {
	Store   *auth.Store
	Backups *backup.Service
	Audit   *audit.Store
	Perms   middleware.PermissionStore
}

func NewHandler(store *auth.Store, backups *backup.Service, auditStore *audit.Store, perms middleware.PermissionStore) *Handler {
	return &Handler{Store: store, Backups: backups, Audit: auditStore, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermAdminUsers, h.Perms)).Get("/admin/users", h.handleListUsers)
	r.With(middleware.RequirePermission(auth.PermAdminUsers, h.Perms)).Post("/admin/users/{username}/password", h.handleResetPassword)
	r.With(middleware.RequirePermission(auth.PermAdminBackup, h.Perms)).Post("/admin/backups", h.handleCreateBackup)
	r.With(middleware.RequirePermission(auth.PermAdminBackup, h.Perms)).Get("/admin/backups", h.handleListBackups)
	r.With(middleware.RequirePermission(auth.PermAdminExport, h.Perms)).Get("/admin/export", h.handleExport)
	r.With(middleware.RequirePermission(auth.PermAuditRead, h.Perms)).Get("/admin/audit", h.handleAudit)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	users, err := h.Store.ListUsers(r.Context(), user.TenantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list users", reqID)
		return
	}
	api.Success(w, users, reqID)
}

type resetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	username := chi.URLParam(r, "username")

	var payload resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if len(payload.NewPassword) < 8 {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "newPassword", Reason: "must be at least 8 characters"}})
		return
	}

	hash, err := auth.HashPassword(payload.NewPassword)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "hash_error", "failed to hash password", reqID)
		return
	}

	found, err := h.Store.UpdateUserPassword(r.Context(), user.TenantID, username, hash)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_error", "failed to reset password", reqID)
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "user not found", reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "admin.password_reset", "user "+username)
	api.Success(w, map[string]string{"status": "password reset"}, reqID)
}

func (h *Handler) handleCreateBackup(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	name, err := h.Backups.Snapshot(r.Context(), user.TenantID, backup.KindManual)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "backup_error", "failed to write backup", reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "admin.backup", "file "+name)
	api.Created(w, map[string]string{"file": name}, reqID)
}

func (h *Handler) handleListBackups(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	list, err := h.Backups.List()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list backups", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="export.xlsx"`)
	if err := h.Backups.Export(r.Context(), user.TenantID, w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_error", "failed to export data", reqID)
		return
	}
	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "admin.export", "xlsx export")
}

func (h *Handler) handleAudit(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events, err := h.Audit.List(r.Context(), user.TenantID, audit.Filter{
		UserID: r.URL.Query().Get("userId"),
		Action: r.URL.Query().Get("action"),
		Limit:  limit,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list audit events", reqID)
		return
	}
	api.Success(w, events, reqID)
}

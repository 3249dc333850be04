package periodshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"talent/internal/domain/audit"
	"talent/internal/domain/auth"
	"talent/internal/domain/periods"
	"talent/internal/platform/requestctx"
	"talent/internal/transport/http/api"
	"talent/internal/transport/http/middleware"
	"talent/internal/transport/http/shared"
)

type Handler struct {
	Store *periods.Store
	Perms middleware.PermissionStore
	Audit *audit.Store
}

func NewHandler(store *periods.Store, perms middleware.PermissionStore, auditStore *audit.Store) *Handler {
	return &Handler{Store: store, Perms: perms, Audit: auditStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermPeriodsRead, h.Perms)).Get("/periods", h.handleList)
	r.With(middleware.RequirePermission(auth.PermPeriodsRead, h.Perms)).Get("/periods/active", h.handleActive)
	r.With(middleware.RequirePermission(auth.PermPeriodsWrite, h.Perms)).Post("/periods/activate", h.handleActivate)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	list, err := h.Store.List(r.Context(), user.TenantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list periods", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleActive(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	name, err := h.Store.Active(r.Context(), user.TenantID)
	if errors.Is(err, periods.ErrNoActivePeriod) {
		api.Fail(w, http.StatusNotFound, "no_active_period", "no active period configured", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_error", "failed to load active period", reqID)
		return
	}

	deadline, err := h.Store.Deadline(r.Context(), user.TenantID, name)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_error", "failed to load period deadline", reqID)
		return
	}
	api.Success(w, periods.Period{Name: name, Deadline: deadline, Active: true}, reqID)
}

type activateRequest struct {
	Name     string `json:"name"`
	Deadline string `json:"deadline"`
}

func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload activateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "period name is required")
	var deadline *time.Time
	if payload.Deadline != "" {
		parsed, ok := v.Date("deadline", payload.Deadline)
		if ok {
			deadline = &parsed
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	if err := h.Store.Activate(r.Context(), user.TenantID, payload.Name, deadline); err != nil {
		api.Fail(w, http.StatusInternalServerError, "activate_error", "failed to activate period", reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "periods.activate", "period "+payload.Name)
	api.Success(w, map[string]string{"active": payload.Name}, reqID)
}

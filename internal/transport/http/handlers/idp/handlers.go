package idphandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talent/internal/domain/audit"
	"talent/internal/domain/auth"
	"talent/internal/domain/idp"
	"talent/internal/platform/requestctx"
	"talent/internal/transport/http/api"
	"talent/internal/transport/http/middleware"
	"talent/internal/transport/http/shared"
)

type Handler struct {
	Service *idp.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Store
}

func NewHandler(service *idp.Service, perms middleware.PermissionStore, auditStore *audit.Store) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermIDPRead, h.Perms)).Get("/idp", h.handleGet)
	r.With(middleware.RequirePermission(auth.PermIDPWrite, h.Perms)).Put("/idp", h.handleReplace)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	period := r.URL.Query().Get("period")
	employeeID := r.URL.Query().Get("employeeId")

	v := shared.NewValidator()
	v.Required("period", period, "period query parameter is required")
	v.Required("employeeId", employeeID, "employeeId query parameter is required")
	if v.Reject(w, reqID) {
		return
	}

	plan, err := h.Service.Get(r.Context(), user.TenantID, period, employeeID)
	if errors.Is(err, idp.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "development plan not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_error", "failed to load development plan", reqID)
		return
	}
	api.Success(w, plan, reqID)
}

func (h *Handler) handleReplace(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var plan idp.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("period", plan.Period, "period is required")
	v.Required("employeeId", plan.EmployeeID, "employee id is required")
	if v.Reject(w, reqID) {
		return
	}

	plan.TenantID = user.TenantID
	id, err := h.Service.Replace(r.Context(), plan)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "save_error", "failed to save development plan", reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "idp.save", "employee "+plan.EmployeeID+" period "+plan.Period)
	api.Success(w, map[string]string{"id": id}, reqID)
}

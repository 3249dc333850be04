package goalshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"talent/internal/domain/audit"
	"talent/internal/domain/auth"
	"talent/internal/domain/goals"
	"talent/internal/platform/requestctx"
	"talent/internal/transport/http/api"
	"talent/internal/transport/http/middleware"
	"talent/internal/transport/http/shared"
)

type Handler struct {
	Service *goals.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Store
}

func NewHandler(service *goals.Service, perms middleware.PermissionStore, auditStore *audit.Store) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermGoalsRead, h.Perms)).Get("/goals", h.handleList)
	r.With(middleware.RequirePermission(auth.PermGoalsRead, h.Perms)).Get("/goals/{goalID}", h.handleGet)
	r.With(middleware.RequirePermission(auth.PermGoalsWrite, h.Perms)).Post("/goals", h.handleCreate)
	r.With(middleware.RequirePermission(auth.PermGoalsWrite, h.Perms)).Put("/goals/{goalID}", h.handleUpdate)
	r.With(middleware.RequirePermission(auth.PermGoalsWrite, h.Perms)).Delete("/goals/{goalID}", h.handleDelete)
	r.With(middleware.RequirePermission(auth.PermGoalsWrite, h.Perms)).Put("/goals/{goalID}/kpis", h.handleReplaceKPIs)
	r.With(middleware.RequirePermission(auth.PermGoalsWrite, h.Perms)).Post("/goals/{goalID}/progress", h.handleManualProgress)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.Service.ListForEmployee(r.Context(), user.TenantID, period, employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list goals", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	goal, err := h.Service.Get(r.Context(), user.TenantID, chi.URLParam(r, "goalID"))
	if errors.Is(err, goals.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "goal not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_error", "failed to load goal", reqID)
		return
	}
	api.Success(w, goal, reqID)
}

type goalRequest struct {
	Period      string  `json:"period"`
	EmployeeID  string  `json:"employeeId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	Status      string  `json:"status"`
	Deadline    string  `json:"deadline"`
}

func (g *goalRequest) toGoal(v *shared.Validator) goals.Goal {
	v.Required("period", g.Period, "period is required")
	v.Required("employeeId", g.EmployeeID, "employee id is required")
	v.Required("title", g.Title, "title is required")
	if g.Weight < 0 || g.Weight > 100 {
		v.Add("weight", "must be between 0 and 100")
	}
	v.Enum("status", g.Status, []string{goals.StatusOnTrack, goals.StatusAtRisk, goals.StatusCompleted}, "unknown goal status")

	var deadline *time.Time
	if g.Deadline != "" {
		if parsed, ok := v.Date("deadline", g.Deadline); ok {
			deadline = &parsed
		}
	}

	return goals.Goal{
		Period:      g.Period,
		EmployeeID:  g.EmployeeID,
		Title:       g.Title,
		Description: g.Description,
		Weight:      g.Weight,
		Status:      g.Status,
		Deadline:    deadline,
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload goalRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	goal := payload.toGoal(v)
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.Create(r.Context(), user.TenantID, goal)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_error", "failed to create goal", reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "goals.create", "goal "+id)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	goalID := chi.URLParam(r, "goalID")

	var payload goalRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	goal := payload.toGoal(v)
	if v.Reject(w, reqID) {
		return
	}

	err := h.Service.Update(r.Context(), user.TenantID, goalID, goal)
	if errors.Is(err, goals.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "goal not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_error", "failed to update goal", reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "goals.update", "goal "+goalID)
	api.Success(w, map[string]string{"id": goalID}, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	goalID := chi.URLParam(r, "goalID")

	err := h.Service.Delete(r.Context(), user.TenantID, goalID)
	if errors.Is(err, goals.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "goal not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_error", "failed to delete goal", reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "goals.delete", "goal "+goalID)
	api.Success(w, map[string]string{"id": goalID}, reqID)
}

type replaceKPIsRequest struct {
	KPIs []goals.KPI `json:"kpis"`
}

func (h *Handler) handleReplaceKPIs(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	goalID := chi.URLParam(r, "goalID")

	var payload replaceKPIsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	progress, err := h.Service.ReplaceKPIs(r.Context(), user.TenantID, goalID, payload.KPIs)
	if errors.Is(err, goals.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "goal not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "kpi_error", err.Error(), reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "goals.kpis", "goal "+goalID)
	api.Success(w, map[string]any{"id": goalID, "progress": progress}, reqID)
}

type manualProgressRequest struct {
	Progress float64 `json:"progress"`
}

func (h *Handler) handleManualProgress(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	goalID := chi.URLParam(r, "goalID")

	var payload manualProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.Progress < 0 || payload.Progress > 100 {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "progress", Reason: "must be between 0 and 100"}})
		return
	}

	err := h.Service.SetManualProgress(r.Context(), user.TenantID, goalID, payload.Progress)
	if errors.Is(err, goals.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "goal not found", reqID)
		return
	}
	if errors.Is(err, goals.ErrHasKPIs) {
		api.Fail(w, http.StatusConflict, "kpi_managed", "progress is derived from KPIs for this goal", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_error", "failed to update progress", reqID)
		return
	}
	api.Success(w, map[string]any{"id": goalID, "progress": payload.Progress}, reqID)
}

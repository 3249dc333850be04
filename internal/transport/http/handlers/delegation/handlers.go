package delegationhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talent/internal/domain/audit"
	"talent/internal/domain/auth"
	"talent/internal/domain/delegation"
	"talent/internal/domain/directory"
	"talent/internal/domain/evaluations"
	"talent/internal/domain/scoring"
	"talent/internal/platform/requestctx"
	"talent/internal/transport/http/api"
	"talent/internal/transport/http/middleware"
	"talent/internal/transport/http/shared"
)

type Handler struct {
	Service   *delegation.Service
	Directory *directory.Service
	Perms     middleware.PermissionStore
	Audit     *audit.Store
}

func NewHandler(service *delegation.Service, dir *directory.Service, perms middleware.PermissionStore, auditStore *audit.Store) *Handler {
	return &Handler{Service: service, Directory: dir, Perms: perms, Audit: auditStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermDelegationWrite, h.Perms)).Post("/delegations", h.handleCreate)
	r.With(middleware.RequirePermission(auth.PermDelegationComplete, h.Perms)).Get("/delegations", h.handleList)
	r.With(middleware.RequirePermission(auth.PermDelegationComplete, h.Perms)).Post("/delegations/{taskID}/complete", h.handleComplete)
}

type createRequest struct {
	Period     string `json:"period"`
	DelegateID string `json:"delegateId"`
	TargetID   string `json:"targetId"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("period", payload.Period, "period is required")
	v.Required("delegateId", payload.DelegateID, "delegate id is required")
	v.Required("targetId", payload.TargetID, "target id is required")
	if payload.DelegateID == payload.TargetID {
		v.Add("delegateId", "delegate and target must differ")
	}
	if v.Reject(w, reqID) {
		return
	}

	me, err := h.Directory.GetByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "no employee record linked to this user", reqID)
		return
	}

	isManager, err := h.Directory.IsManagerOf(r.Context(), user.TenantID, me.ID, payload.TargetID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "check_error", "failed to verify reporting line", reqID)
		return
	}
	if !isManager {
		api.Fail(w, http.StatusForbidden, "forbidden", "target is not in your team", reqID)
		return
	}

	task, err := h.Service.Create(r.Context(), user.TenantID, payload.Period, me.ID, payload.DelegateID, payload.TargetID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_error", "failed to delegate evaluation", reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "delegation.create", "task "+task.ID)
	api.Created(w, task, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	period := r.URL.Query().Get("period")
	v := shared.NewValidator()
	v.Required("period", period, "period query parameter is required")
	if v.Reject(w, reqID) {
		return
	}

	me, err := h.Directory.GetByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "no employee record linked to this user", reqID)
		return
	}

	var tasks []delegation.Task
	if r.URL.Query().Get("as") == "manager" {
		tasks, err = h.Service.ListForManager(r.Context(), user.TenantID, period, me.ID)
	} else {
		tasks, err = h.Service.ListForDelegate(r.Context(), user.TenantID, period, me.ID)
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list delegated tasks", reqID)
		return
	}
	api.Success(w, tasks, reqID)
}

type completeRequest struct {
	Performance []int  `json:"performance"`
	Potential   []int  `json:"potential"`
	ActionPlan  string `json:"actionPlan"`
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	taskID := chi.URLParam(r, "taskID")

	var payload completeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Ratings("performance", payload.Performance, scoring.Dimensions, scoring.RatingMin, scoring.RatingMax)
	v.Ratings("potential", payload.Potential, scoring.Dimensions, scoring.RatingMin, scoring.RatingMax)
	if v.Reject(w, reqID) {
		return
	}

	me, err := h.Directory.GetByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "no employee record linked to this user", reqID)
		return
	}

	rec, err := h.Service.Complete(r.Context(), user.TenantID, delegation.CompleteInput{
		TaskID:      taskID,
		DelegateID:  me.ID,
		Performance: payload.Performance,
		Potential:   payload.Potential,
		ActionPlan:  payload.ActionPlan,
	})
	switch {
	case errors.Is(err, delegation.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "delegated task not found", reqID)
		return
	case errors.Is(err, delegation.ErrNotDelegate):
		api.Fail(w, http.StatusForbidden, "forbidden", "task is assigned to another delegate", reqID)
		return
	case errors.Is(err, delegation.ErrAlreadyCompleted):
		api.Fail(w, http.StatusConflict, "already_completed", "delegated task is already completed", reqID)
		return
	case errors.Is(err, evaluations.ErrLocked):
		api.Fail(w, http.StatusConflict, "locked", "evaluation is submitted and locked", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusBadRequest, "complete_error", err.Error(), reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "delegation.complete", "task "+taskID)
	api.Success(w, rec, reqID)
}

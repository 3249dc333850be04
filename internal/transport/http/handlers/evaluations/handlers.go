package evaluationshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talent/internal/domain/audit"
	"talent/internal/domain/auth"
	"talent/internal/domain/directory"
	"talent/internal/domain/evaluations"
	"talent/internal/domain/scoring"
	"talent/internal/platform/requestctx"
	"talent/internal/transport/http/api"
	"talent/internal/transport/http/middleware"
	"talent/internal/transport/http/shared"
)

type Handler struct {
	Service   *evaluations.Service
	Directory *directory.Service
	Perms     middleware.PermissionStore
	Audit     *audit.Store
}

func NewHandler(service *evaluations.Service, dir *directory.Service, perms middleware.PermissionStore, auditStore *audit.Store) *Handler {
	return &Handler{Service: service, Directory: dir, Perms: perms, Audit: auditStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermEvaluationsTeam, h.Perms)).Post("/evaluations", h.handleSave)
	r.With(middleware.RequirePermission(auth.PermEvaluationsSelf, h.Perms)).Post("/evaluations/self", h.handleSaveSelf)
	r.With(middleware.RequirePermission(auth.PermEvaluationsRead, h.Perms)).Get("/evaluations", h.handleGet)
	r.With(middleware.RequirePermission(auth.PermEvaluationsTeam, h.Perms)).Get("/evaluations/team", h.handleTeam)
	r.With(middleware.RequirePermission(auth.PermEvaluationsRead, h.Perms)).Get("/evaluations/history/{employeeID}", h.handleHistory)
	r.With(middleware.RequirePermission(auth.PermEvaluationsLock, h.Perms)).Post("/evaluations/{recordID}/lock", h.handleLock)
}

type saveRequest struct {
	Period      string `json:"period"`
	EmployeeID  string `json:"employeeId"`
	Performance []int  `json:"performance"`
	Potential   []int  `json:"potential"`
	ActionPlan  string `json:"actionPlan"`
}

func (v *saveRequest) validate(w http.ResponseWriter, reqID string, requireEmployee bool) bool {
	check := shared.NewValidator()
	check.Required("period", v.Period, "period is required")
	if requireEmployee {
		check.Required("employeeId", v.EmployeeID, "employee id is required")
	}
	check.Ratings("performance", v.Performance, scoring.Dimensions, scoring.RatingMin, scoring.RatingMax)
	check.Ratings("potential", v.Potential, scoring.Dimensions, scoring.RatingMin, scoring.RatingMax)
	return !check.Reject(w, reqID)
}

// handleSave stores a manager's evaluation of a team member. A record the
// manager already submitted is locked and comes back as a conflict.
func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload saveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if !payload.validate(w, reqID, true) {
		return
	}

	me, err := h.Directory.GetByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "no employee record linked to this user", reqID)
		return
	}

	isManager, err := h.Directory.IsManagerOf(r.Context(), user.TenantID, me.ID, payload.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "check_error", "failed to verify reporting line", reqID)
		return
	}
	if !isManager {
		// HR can correct records outside its own reporting line.
		allowed, err := h.Perms.HasPermission(r.Context(), user.RoleID, auth.PermDirectoryWrite)
		if err != nil || !allowed {
			api.Fail(w, http.StatusForbidden, "forbidden", "employee is not in your team", reqID)
			return
		}
	}

	rec, err := h.Service.Save(r.Context(), user.TenantID, evaluations.SaveInput{
		Period:      payload.Period,
		EmployeeID:  payload.EmployeeID,
		EvaluatorID: me.ID,
		Performance: payload.Performance,
		Potential:   payload.Potential,
		ActionPlan:  payload.ActionPlan,
	})
	if errors.Is(err, evaluations.ErrLocked) {
		api.Fail(w, http.StatusConflict, "locked", "evaluation is submitted and locked", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "save_error", err.Error(), reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "evaluations.save", "employee "+payload.EmployeeID+" period "+payload.Period)
	api.Created(w, rec, reqID)
}

// handleSaveSelf stores the caller's own assessment. Self records are always
// replaceable and land as Submitted.
func (h *Handler) handleSaveSelf(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload saveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if !payload.validate(w, reqID, false) {
		return
	}

	me, err := h.Directory.GetByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "no employee record linked to this user", reqID)
		return
	}

	rec, err := h.Service.Save(r.Context(), user.TenantID, evaluations.SaveInput{
		Period:      payload.Period,
		EmployeeID:  me.ID,
		SelfEval:    true,
		Performance: payload.Performance,
		Potential:   payload.Potential,
		ActionPlan:  payload.ActionPlan,
	})
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "save_error", err.Error(), reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "evaluations.self", "period "+payload.Period)
	api.Created(w, rec, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	period := r.URL.Query().Get("period")
	employeeID := r.URL.Query().Get("employeeId")
	selfEval := r.URL.Query().Get("self") == "true"

	v := shared.NewValidator()
	v.Required("period", period, "period query parameter is required")
	if v.Reject(w, reqID) {
		return
	}

	if employeeID == "" {
		me, err := h.Directory.GetByUserID(r.Context(), user.TenantID, user.UserID)
		if err != nil {
			api.Fail(w, http.StatusNotFound, "not_found", "no employee record linked to this user", reqID)
			return
		}
		employeeID = me.ID
	}

	rec, err := h.Service.Get(r.Context(), user.TenantID, period, employeeID, selfEval)
	if errors.Is(err, evaluations.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "evaluation not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_error", "failed to load evaluation", reqID)
		return
	}
	api.Success(w, rec, reqID)
}

func (h *Handler) handleTeam(w http.ResponseWriter, r *http.Request) {
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

	records, err := h.Service.ListForEvaluator(r.Context(), user.TenantID, period, me.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list evaluations", reqID)
		return
	}
	api.Success(w, records, reqID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	records, err := h.Service.ListForEmployee(r.Context(), user.TenantID, chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list evaluations", reqID)
		return
	}
	api.Success(w, records, reqID)
}

func (h *Handler) handleLock(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	recordID := chi.URLParam(r, "recordID")

	err := h.Service.Lock(r.Context(), user.TenantID, recordID)
	if errors.Is(err, evaluations.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "evaluation not found", reqID)
		return
	}
	if errors.Is(err, evaluations.ErrLocked) {
		api.Fail(w, http.StatusConflict, "locked", "evaluation is already submitted", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "lock_error", "failed to lock evaluation", reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "evaluations.lock", "record "+recordID)
	api.Success(w, map[string]string{"status": evaluations.StatusSubmitted}, reqID)
}

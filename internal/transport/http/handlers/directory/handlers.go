package directoryhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talent/internal/domain/audit"
	"talent/internal/domain/auth"
	"talent/internal/domain/directory"
	"talent/internal/platform/requestctx"
	"talent/internal/transport/http/api"
	"talent/internal/transport/http/middleware"
	"talent/internal/transport/http/shared"
)

type Handler struct {
	Service *directory.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Store
}

func NewHandler(service *directory.Service, perms middleware.PermissionStore, auditStore *audit.Store) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermDirectoryRead, h.Perms)).Get("/employees", h.handleList)
	r.With(middleware.RequirePermission(auth.PermDirectoryRead, h.Perms)).Get("/employees/team", h.handleTeam)
	r.With(middleware.RequirePermission(auth.PermDirectoryRead, h.Perms)).Get("/employees/evaluators", h.handleEvaluators)
	r.With(middleware.RequirePermission(auth.PermDirectoryRead, h.Perms)).Get("/employees/{employeeID}", h.handleGet)
	r.With(middleware.RequirePermission(auth.PermDirectoryWrite, h.Perms)).Post("/employees", h.handleOnboard)
	r.With(middleware.RequirePermission(auth.PermDirectoryWrite, h.Perms)).Post("/employees/{employeeID}/deactivate", h.handleSetActive(false))
	r.With(middleware.RequirePermission(auth.PermDirectoryWrite, h.Perms)).Post("/employees/{employeeID}/activate", h.handleSetActive(true))
	r.With(middleware.RequirePermission(auth.PermDirectoryWrite, h.Perms)).Post("/employees/import", h.handleImport)
	r.With(middleware.RequirePermission(auth.PermAdminExport, h.Perms)).Get("/employees/export", h.handleExport)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	activeOnly := r.URL.Query().Get("includeInactive") != "true"
	employees, err := h.Service.List(r.Context(), user.TenantID, activeOnly)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list employees", reqID)
		return
	}
	api.Success(w, employees, reqID)
}

func (h *Handler) handleTeam(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	me, err := h.Service.GetByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "no employee record linked to this user", reqID)
		return
	}
	team, err := h.Service.ListTeam(r.Context(), user.TenantID, me.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list team", reqID)
		return
	}
	api.Success(w, team, reqID)
}

// handleEvaluators backs the delegate picker: active employees flagged as
// evaluators.
func (h *Handler) handleEvaluators(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	evaluators, err := h.Service.ListEvaluators(r.Context(), user.TenantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list evaluators", reqID)
		return
	}
	api.Success(w, evaluators, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	emp, err := h.Service.Get(r.Context(), user.TenantID, chi.URLParam(r, "employeeID"))
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_error", "failed to load employee", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

type onboardRequest struct {
	EmployeeNumber string `json:"employeeNumber"`
	FullName       string `json:"fullName"`
	JobTitle       string `json:"jobTitle"`
	Department     string `json:"department"`
	ManagerNumber  string `json:"managerNumber"`
	IsEvaluator    bool   `json:"isEvaluator"`
	Password       string `json:"password"`
}

func (h *Handler) handleOnboard(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload onboardRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeNumber", payload.EmployeeNumber, "employee number is required")
	v.Required("fullName", payload.FullName, "full name is required")
	if payload.Password != "" && len(payload.Password) < 8 {
		v.Add("password", "must be at least 8 characters")
	}
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.Onboard(r.Context(), user.TenantID, directory.OnboardInput{
		EmployeeNumber: payload.EmployeeNumber,
		FullName:       payload.FullName,
		JobTitle:       payload.JobTitle,
		Department:     payload.Department,
		ManagerNumber:  payload.ManagerNumber,
		IsEvaluator:    payload.IsEvaluator,
		Password:       payload.Password,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "onboard_error", "failed to onboard employee", reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "directory.onboard", "employee "+payload.EmployeeNumber)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleSetActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := requestctx.GetRequestID(r.Context())
		user, _ := middleware.GetUser(r.Context())
		employeeID := chi.URLParam(r, "employeeID")

		err := h.Service.SetActive(r.Context(), user.TenantID, employeeID, active)
		if errors.Is(err, directory.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "update_error", "failed to update employee", reqID)
			return
		}

		action := "directory.deactivate"
		if active {
			action = "directory.activate"
		}
		h.Audit.Record(r.Context(), user.TenantID, user.UserID, action, "employee "+employeeID)
		api.Success(w, map[string]bool{"active": active}, reqID)
	}
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	file, _, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "multipart field 'file' is required", reqID)
		return
	}
	defer file.Close()

	rows, err := directory.ParseRoster(file)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_workbook", "could not read roster workbook", reqID)
		return
	}

	result, err := h.Service.ImportRoster(r.Context(), user.TenantID, rows)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "import_error", "roster import failed", reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "directory.import", "roster import")
	api.Success(w, result, reqID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employees, err := h.Service.List(r.Context(), user.TenantID, false)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_error", "failed to load employees", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="roster.xlsx"`)
	if err := directory.WriteRoster(w, employees); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_error", "failed to write workbook", reqID)
		return
	}
	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "directory.export", "roster export")
}

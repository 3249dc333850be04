package reportshandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talent/internal/domain/auth"
	"talent/internal/domain/directory"
	"talent/internal/domain/evaluations"
	"talent/internal/domain/reports"
	"talent/internal/platform/requestctx"
	"talent/internal/transport/http/api"
	"talent/internal/transport/http/middleware"
	"talent/internal/transport/http/shared"
)

type Handler struct {
	Reports     *reports.Service
	Evaluations *evaluations.Service
	Directory   *directory.Service
	Perms       middleware.PermissionStore
}

func NewHandler(svc *reports.Service, evals *evaluations.Service, dir *directory.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Reports: svc, Evaluations: evals, Directory: dir, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/reports/summary", h.handleSummary)
	r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/reports/evaluations/{recordID}/pdf", h.handleEvaluationPDF)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	period := r.URL.Query().Get("period")
	v := shared.NewValidator()
	v.Required("period", period, "period query parameter is required")
	if v.Reject(w, reqID) {
		return
	}

	// HR and admin callers hold the directory write permission and read the
	// whole tenant; everyone else gets their own team.
	tenantWide, err := h.Perms.HasPermission(r.Context(), user.RoleID, auth.PermDirectoryWrite)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_error", "failed to build summary", reqID)
		return
	}

	callerID := ""
	if !tenantWide {
		me, err := h.Directory.GetByUserID(r.Context(), user.TenantID, user.UserID)
		if err != nil {
			api.Fail(w, http.StatusNotFound, "not_found", "no employee record linked to this user", reqID)
			return
		}
		callerID = me.ID
	}

	dash, err := h.Reports.Summary(r.Context(), user.TenantID, period, callerID, tenantWide)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_error", "failed to build summary", reqID)
		return
	}
	api.Success(w, dash, reqID)
}

func (h *Handler) handleEvaluationPDF(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	rec, err := h.Evaluations.GetByID(r.Context(), user.TenantID, chi.URLParam(r, "recordID"))
	if errors.Is(err, evaluations.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "evaluation not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_error", "failed to load evaluation", reqID)
		return
	}

	data, err := reports.EvaluationPDF(rec)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdf_error", "failed to render report", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="evaluation.pdf"`)
	_, _ = w.Write(data)
}

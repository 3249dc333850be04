package engagementhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"talent/internal/domain/audit"
	"talent/internal/domain/auth"
	"talent/internal/domain/directory"
	"talent/internal/domain/engagement"
	"talent/internal/platform/requestctx"
	"talent/internal/transport/http/api"
	"talent/internal/transport/http/middleware"
	"talent/internal/transport/http/shared"
)

type Handler struct {
	Service   *engagement.Service
	Directory *directory.Service
	Perms     middleware.PermissionStore
	Audit     *audit.Store
}

func NewHandler(service *engagement.Service, dir *directory.Service, perms middleware.PermissionStore, auditStore *audit.Store) *Handler {
	return &Handler{Service: service, Directory: dir, Perms: perms, Audit: auditStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermEngagementRead, h.Perms)).Get("/recognitions", h.handleWall)
	r.With(middleware.RequirePermission(auth.PermEngagementWrite, h.Perms)).Post("/recognitions", h.handleRecognize)
	r.With(middleware.RequirePermission(auth.PermEngagementManage, h.Perms)).Post("/pulse", h.handleOpenSurvey)
	r.With(middleware.RequirePermission(auth.PermEngagementRead, h.Perms)).Get("/pulse/active", h.handleActiveSurvey)
	r.With(middleware.RequirePermission(auth.PermEngagementWrite, h.Perms)).Post("/pulse/{surveyID}/responses", h.handleRespond)
	r.With(middleware.RequirePermission(auth.PermEngagementManage, h.Perms)).Get("/pulse/{surveyID}/stats", h.handleStats)
	r.With(middleware.RequirePermission(auth.PermEngagementWrite, h.Perms)).Post("/meetings", h.handleLogMeeting)
	r.With(middleware.RequirePermission(auth.PermEngagementRead, h.Perms)).Get("/meetings", h.handleMeetingHistory)
}

func (h *Handler) handleWall(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	wall, err := h.Service.Wall(r.Context(), user.TenantID,
		r.URL.Query().Get("senderId"), r.URL.Query().Get("receiverId"), limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list recognitions", reqID)
		return
	}
	api.Success(w, wall, reqID)
}

type recognizeRequest struct {
	ReceiverID string `json:"receiverId"`
	Category   string `json:"category"`
	Message    string `json:"message"`
}

func (h *Handler) handleRecognize(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload recognizeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("receiverId", payload.ReceiverID, "receiver id is required")
	v.Required("message", payload.Message, "message is required")
	if v.Reject(w, reqID) {
		return
	}

	me, err := h.Directory.GetByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "no employee record linked to this user", reqID)
		return
	}

	id, err := h.Service.Recognize(r.Context(), engagement.Recognition{
		TenantID:   user.TenantID,
		SenderID:   me.ID,
		ReceiverID: payload.ReceiverID,
		Category:   payload.Category,
		Message:    payload.Message,
	})
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "create_error", err.Error(), reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

type openSurveyRequest struct {
	Question string `json:"question"`
}

func (h *Handler) handleOpenSurvey(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload openSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("question", payload.Question, "question is required")
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.OpenSurvey(r.Context(), user.TenantID, payload.Question)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_error", "failed to open survey", reqID)
		return
	}

	h.Audit.Record(r.Context(), user.TenantID, user.UserID, "engagement.survey_open", "survey "+id)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleActiveSurvey(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	survey, err := h.Service.ActiveSurvey(r.Context(), user.TenantID)
	if errors.Is(err, engagement.ErrNoActiveSurvey) {
		api.Fail(w, http.StatusNotFound, "no_active_survey", "no active pulse survey", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_error", "failed to load survey", reqID)
		return
	}
	api.Success(w, survey, reqID)
}

type respondRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

func (h *Handler) handleRespond(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	surveyID := chi.URLParam(r, "surveyID")

	var payload respondRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.Score < engagement.ScoreMin || payload.Score > engagement.ScoreMax {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "score", Reason: "must be between 1 and 10"}})
		return
	}

	err := h.Service.Respond(r.Context(), user.TenantID, surveyID, user.UserID, payload.Score, payload.Comment)
	if errors.Is(err, engagement.ErrAlreadyVoted) {
		api.Fail(w, http.StatusConflict, "already_voted", "you already responded to this survey", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "respond_error", "failed to record response", reqID)
		return
	}
	api.Success(w, map[string]string{"status": "recorded"}, reqID)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	stats, err := h.Service.SurveyStats(r.Context(), user.TenantID, chi.URLParam(r, "surveyID"))
	if errors.Is(err, engagement.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "survey not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_error", "failed to load survey stats", reqID)
		return
	}
	api.Success(w, stats, reqID)
}

type meetingRequest struct {
	EmployeeID  string `json:"employeeId"`
	Notes       string `json:"notes"`
	ActionItems string `json:"actionItems"`
	MeetingOn   string `json:"meetingOn"`
}

func (h *Handler) handleLogMeeting(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload meetingRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("notes", payload.Notes, "notes are required")
	meetingOn := time.Now()
	if payload.MeetingOn != "" {
		if parsed, ok := v.Date("meetingOn", payload.MeetingOn); ok {
			meetingOn = parsed
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	me, err := h.Directory.GetByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "no employee record linked to this user", reqID)
		return
	}

	id, err := h.Service.LogMeeting(r.Context(), engagement.MeetingNote{
		TenantID:    user.TenantID,
		ManagerID:   me.ID,
		EmployeeID:  payload.EmployeeID,
		Notes:       payload.Notes,
		ActionItems: payload.ActionItems,
		MeetingOn:   meetingOn,
	})
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "create_error", err.Error(), reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleMeetingHistory(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employeeID := r.URL.Query().Get("employeeId")
	v := shared.NewValidator()
	v.Required("employeeId", employeeID, "employeeId query parameter is required")
	if v.Reject(w, reqID) {
		return
	}

	me, err := h.Directory.GetByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "no employee record linked to this user", reqID)
		return
	}

	notes, err := h.Service.MeetingHistory(r.Context(), user.TenantID, me.ID, employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_error", "failed to list meeting notes", reqID)
		return
	}
	api.Success(w, notes, reqID)
}

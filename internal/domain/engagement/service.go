package engagement

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyMessage = errors.New("message must not be empty")

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) Recognize(ctx context.Context, rec Recognition) (string, error) {
	if strings.TrimSpace(rec.Message) == "" {
		return "", ErrEmptyMessage
	}
	if rec.Category == "" {
		rec.Category = "Teamwork"
	}
	return s.Store.AddRecognition(ctx, rec)
}

func (s *Service) Wall(ctx context.Context, tenantID, senderID, receiverID string, limit int) ([]Recognition, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.Store.ListRecognitions(ctx, tenantID, senderID, receiverID, limit)
}

func (s *Service) OpenSurvey(ctx context.Context, tenantID, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyMessage
	}
	return s.Store.OpenSurvey(ctx, tenantID, question)
}

func (s *Service) ActiveSurvey(ctx context.Context, tenantID string) (Survey, error) {
	return s.Store.ActiveSurvey(ctx, tenantID)
}

func (s *Service) Respond(ctx context.Context, tenantID, surveyID, userID string, score int, comment string) error {
	return s.Store.Respond(ctx, tenantID, surveyID, userID, score, comment)
}

func (s *Service) SurveyStats(ctx context.Context, tenantID, surveyID string) (SurveyStats, error) {
	return s.Store.SurveyStats(ctx, tenantID, surveyID)
}

func (s *Service) LogMeeting(ctx context.Context, note MeetingNote) (string, error) {
	if strings.TrimSpace(note.Notes) == "" {
		return "", ErrEmptyMessage
	}
	return s.Store.AddMeetingNote(ctx, note)
}

// MeetingHistory lists the 1:1 notes the caller may see. A manager reads the
// notes they logged for the employee; the subject employee reads their own
// history across all managers.
func (s *Service) MeetingHistory(ctx context.Context, tenantID, callerEmployeeID, employeeID string) ([]MeetingNote, error) {
	managerID := callerEmployeeID
	if employeeID == callerEmployeeID {
		managerID = ""
	}
	return s.Store.ListMeetingNotes(ctx, tenantID, managerID, employeeID)
}

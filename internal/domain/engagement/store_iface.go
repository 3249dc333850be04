package engagement

import "context"

type StoreAPI interface {
	AddRecognition(ctx context.Context, rec Recognition) (string, error)
	ListRecognitions(ctx context.Context, tenantID, senderID, receiverID string, limit int) ([]Recognition, error)
	OpenSurvey(ctx context.Context, tenantID, question string) (string, error)
	ActiveSurvey(ctx context.Context, tenantID string) (Survey, error)
	Respond(ctx context.Context, tenantID, surveyID, userID string, score int, comment string) error
	SurveyStats(ctx context.Context, tenantID, surveyID string) (SurveyStats, error)
	AddMeetingNote(ctx context.Context, note MeetingNote) (string, error)
	ListMeetingNotes(ctx context.Context, tenantID, managerID, employeeID string) ([]MeetingNote, error)
}

package engagement

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("engagement record not found")
	ErrNoActiveSurvey = errors.New("no active pulse survey")
	ErrAlreadyVoted   = errors.New("already responded to this survey")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) AddRecognition(ctx context.Context, rec Recognition) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO recognitions (tenant_id, sender_id, receiver_id, category, message)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, rec.TenantID, rec.SenderID, rec.ReceiverID, rec.Category, rec.Message).Scan(&id)
	return id, err
}

// ListRecognitions returns the tenant wall, optionally narrowed to one
// sender or receiver. Empty filter values match everything.
func (s *Store) ListRecognitions(ctx context.Context, tenantID, senderID, receiverID string, limit int) ([]Recognition, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT r.id, r.sender_id, COALESCE(snd.full_name, ''), r.receiver_id, COALESCE(rcv.full_name, ''),
           r.category, r.message, r.created_at
    FROM recognitions r
    LEFT JOIN employees snd ON r.sender_id = snd.id
    LEFT JOIN employees rcv ON r.receiver_id = rcv.id
    WHERE r.tenant_id = $1
      AND ($2 = '' OR r.sender_id::text = $2)
      AND ($3 = '' OR r.receiver_id::text = $3)
    ORDER BY r.created_at DESC
    LIMIT $4
  `, tenantID, senderID, receiverID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Recognition
	for rows.Next() {
		var rec Recognition
		if err := rows.Scan(
			&rec.ID, &rec.SenderID, &rec.SenderName, &rec.ReceiverID, &rec.ReceiverName,
			&rec.Category, &rec.Message, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// OpenSurvey closes any active survey for the tenant and opens the new one
// in the same transaction, keeping at most one active.
func (s *Store) OpenSurvey(ctx context.Context, tenantID, question string) (string, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    UPDATE pulse_surveys SET active = false WHERE tenant_id = $1 AND active
  `, tenantID); err != nil {
		return "", err
	}

	var id string
	if err := tx.QueryRow(ctx, `
    INSERT INTO pulse_surveys (tenant_id, question, active)
    VALUES ($1,$2,true)
    RETURNING id
  `, tenantID, question).Scan(&id); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ActiveSurvey(ctx context.Context, tenantID string) (Survey, error) {
	var sv Survey
	err := s.DB.QueryRow(ctx, `
    SELECT id, question, active, created_at
    FROM pulse_surveys
    WHERE tenant_id = $1 AND active
    ORDER BY created_at DESC
    LIMIT 1
  `, tenantID).Scan(&sv.ID, &sv.Question, &sv.Active, &sv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Survey{}, ErrNoActiveSurvey
	}
	return sv, err
}

// Respond records an anonymous score with an optional free-text comment. A
// per-user voted marker lives in a separate table from the scores, so the
// marker proves participation without linking anyone to a number.
func (s *Store) Respond(ctx context.Context, tenantID, surveyID, userID string, score int, comment string) error {
	if score < ScoreMin || score > ScoreMax {
		return fmt.Errorf("score %d out of range %d..%d", score, ScoreMin, ScoreMax)
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    INSERT INTO pulse_voters (tenant_id, survey_id, user_id)
    VALUES ($1,$2,$3)
    ON CONFLICT (survey_id, user_id) DO NOTHING
  `, tenantID, surveyID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyVoted
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO pulse_responses (tenant_id, survey_id, score, comment)
    VALUES ($1,$2,$3,$4)
  `, tenantID, surveyID, score, comment); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) SurveyStats(ctx context.Context, tenantID, surveyID string) (SurveyStats, error) {
	var stats SurveyStats
	err := s.DB.QueryRow(ctx, `
    SELECT sv.id, sv.question, COUNT(pr.id), COALESCE(AVG(pr.score), 0)
    FROM pulse_surveys sv
    LEFT JOIN pulse_responses pr ON pr.survey_id = sv.id
    WHERE sv.tenant_id = $1 AND sv.id = $2
    GROUP BY sv.id, sv.question
  `, tenantID, surveyID).Scan(&stats.SurveyID, &stats.Question, &stats.Responses, &stats.Average)
	if errors.Is(err, pgx.ErrNoRows) {
		return SurveyStats{}, ErrNotFound
	}
	return stats, err
}

func (s *Store) AddMeetingNote(ctx context.Context, note MeetingNote) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO meeting_notes (tenant_id, manager_id, employee_id, notes, action_items, meeting_on)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, note.TenantID, note.ManagerID, note.EmployeeID, note.Notes, note.ActionItems, note.MeetingOn).Scan(&id)
	return id, err
}

// ListMeetingNotes returns the employee's 1:1 history. An empty managerID
// spans all managers so the subject can read their own notes.
func (s *Store) ListMeetingNotes(ctx context.Context, tenantID, managerID, employeeID string) ([]MeetingNote, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, manager_id, employee_id, notes, COALESCE(action_items, ''), meeting_on, created_at
    FROM meeting_notes
    WHERE tenant_id = $1 AND ($2 = '' OR manager_id::text = $2) AND employee_id = $3
    ORDER BY meeting_on DESC
  `, tenantID, managerID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MeetingNote
	for rows.Next() {
		var note MeetingNote
		if err := rows.Scan(&note.ID, &note.ManagerID, &note.EmployeeID, &note.Notes, &note.ActionItems, &note.MeetingOn, &note.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, note)
	}
	return out, rows.Err()
}

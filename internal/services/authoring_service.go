package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuthoringStore abstracts the schema persistence the authoring workflow needs.
// InsertQuestion assigns DisplayOrder and returns the stored question.
type AuthoringStore interface {
	InsertSurvey(sv *Survey) error
	GetSurvey(id string) (*Survey, error)
	InsertQuestion(q *Question) (*Question, error)
	ListQuestions(surveyID string) ([]*Question, error)
}

// AuthoringService creates surveys and appends questions to them.
type AuthoringService struct {
	store AuthoringStore
	now   func() time.Time
	idGen func() string
}

func NewAuthoringService(store AuthoringStore) *AuthoringService {
	return &AuthoringService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(8) },
	}
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

// CreateSurvey persists a new active survey owned by authorID.
func (s *AuthoringService) CreateSurvey(name, description, authorID string) (*Survey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewInvalidError("survey name required")
	}
	sv := &Survey{
		ID:          s.idGen(),
		Name:        name,
		Description: strings.TrimSpace(description),
		IsActive:    true,
		CreatedBy:   authorID,
		CreatedAt:   s.now(),
	}
	if err := s.store.InsertSurvey(sv); err != nil {
		return nil, fmt.Errorf("create survey: %w", err)
	}
	return sv, nil
}

// AddQuestion appends a question to a survey. Nothing is written when the
// draft fails validation. The choice list comes from ParseOptions, so a
// malformed option literal results in a question with no options rather than
// an error. DisplayOrder is assigned by the store in the same write that
// persists the question, so two authors can never mint the same position.
func (s *AuthoringService) AddQuestion(surveyID string, draft QuestionDraft) (*Question, error) {
	if strings.TrimSpace(surveyID) == "" {
		return nil, NewInvalidError("survey_id required")
	}
	text := strings.TrimSpace(draft.Text)
	if text == "" {
		return nil, NewInvalidError("question text required")
	}
	if !draft.Type.Valid() {
		return nil, NewInvalidError("unknown question type: " + string(draft.Type))
	}
	sv, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, fmt.Errorf("load survey: %w", err)
	}
	if sv == nil {
		return nil, NewNotFoundError("survey not found")
	}
	q := &Question{
		ID:           s.idGen(),
		SurveyID:     surveyID,
		Text:         text,
		Type:         draft.Type,
		Required:     draft.Required,
		Section:      strings.TrimSpace(draft.Section),
		AnalyticsKey: strings.TrimSpace(draft.AnalyticsKey),
		CreatedAt:    s.now(),
	}
	if draft.Type.RequiresOptions() {
		q.Options = ParseOptions(draft.OptionsRaw)
	}
	created, err := s.store.InsertQuestion(q)
	if err != nil {
		return nil, fmt.Errorf("add question: %w", err)
	}
	if created == nil {
		return q, nil
	}
	return created, nil
}

func (s *AuthoringService) GetSurvey(id string) (*Survey, error) {
	return s.store.GetSurvey(id)
}

// ListQuestions returns the survey's questions in ascending display order.
func (s *AuthoringService) ListQuestions(surveyID string) ([]*Question, error) {
	return s.store.ListQuestions(surveyID)
}

package services

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// TakingStore abstracts the persistence the submission workflow needs.
type TakingStore interface {
	GetSurvey(id string) (*Survey, error)
	ListQuestions(surveyID string) ([]*Question, error)
	GetResponse(surveyID, respondentID string) (*ResponseRecord, error)
	UpsertResponse(rec *ResponseRecord) error
	MergeAnalyticsFields(respondentID string, fields map[string]any) error
}

// SurveyForm is everything a respondent needs to render a survey: the survey,
// its questions in display order, and any previously submitted response.
type SurveyForm struct {
	Survey    *Survey         `json:"survey"`
	Questions []*Question     `json:"questions"`
	Previous  *ResponseRecord `json:"previous,omitempty"`
}

type SubmitResult struct {
	SurveyID     string    `json:"survey_id"`
	RespondentID string    `json:"respondent_id"`
	Answered     int       `json:"answered"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// TakingService hosts the respondent-side workflow: load a survey form,
// validate an answer set, and save it.
type TakingService struct {
	store TakingStore
	now   func() time.Time
	logf  func(format string, args ...any)
}

func NewTakingService(store TakingStore) *TakingService {
	return &TakingService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		logf:  log.Printf,
	}
}

// Load assembles the form for one (survey, respondent) pair. Previous is nil
// when the respondent has not submitted yet.
func (s *TakingService) Load(surveyID, respondentID string) (*SurveyForm, error) {
	sv, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, fmt.Errorf("load survey: %w", err)
	}
	if sv == nil {
		return nil, NewNotFoundError("survey not found")
	}
	questions, err := s.store.ListQuestions(surveyID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	prev, err := s.store.GetResponse(surveyID, respondentID)
	if err != nil {
		return nil, fmt.Errorf("load previous response: %w", err)
	}
	return &SurveyForm{Survey: sv, Questions: questions, Previous: prev}, nil
}

// Submit validates and saves one respondent's full answer set. The submission
// is refused, with nothing written, while any required question is missing an
// answer. The saved map replaces any earlier submission wholesale; answers
// not resent are gone. The response row is the source of truth: the analytics
// projection that follows it is a best-effort secondary write whose failure
// is logged and never reaches the caller.
func (s *TakingService) Submit(surveyID, respondentID string, answers map[string]AnswerValue) (*SubmitResult, error) {
	if strings.TrimSpace(respondentID) == "" {
		return nil, NewInvalidError("respondent required")
	}
	sv, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, fmt.Errorf("load survey: %w", err)
	}
	if sv == nil {
		return nil, NewNotFoundError("survey not found")
	}
	questions, err := s.store.ListQuestions(surveyID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if missing := MissingRequired(questions, answers); len(missing) > 0 {
		return nil, &MissingRequiredError{QuestionText: missing[0]}
	}
	if answers == nil {
		answers = map[string]AnswerValue{}
	}
	rec := &ResponseRecord{
		SurveyID:     surveyID,
		RespondentID: respondentID,
		Answers:      answers,
		UpdatedAt:    s.now(),
	}
	if err := s.store.UpsertResponse(rec); err != nil {
		return nil, fmt.Errorf("save response: %w", err)
	}
	if fields := Project(questions, answers); len(fields) > 0 {
		if err := s.store.MergeAnalyticsFields(respondentID, fields); err != nil {
			s.logf("taking service: project analytics for %s: %v", respondentID, err)
		}
	}
	return &SubmitResult{
		SurveyID:     surveyID,
		RespondentID: respondentID,
		Answered:     len(answers),
		SubmittedAt:  rec.UpdatedAt,
	}, nil
}

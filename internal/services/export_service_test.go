package services

import (
	"encoding/csv"
	"reflect"
	"strings"
	"testing"
	"time"
)

type exportStub struct {
	survey    *Survey
	questions []*Question
	responses []*ResponseRecord
}

func (s *exportStub) GetSurvey(id string) (*Survey, error) {
	if s.survey != nil && s.survey.ID == id {
		return s.survey, nil
	}
	return nil, nil
}

func (s *exportStub) ListQuestions(surveyID string) ([]*Question, error) { return s.questions, nil }

func (s *exportStub) ListResponses(surveyID string) ([]*ResponseRecord, error) {
	return s.responses, nil
}

func TestResponsesCSV(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store := &exportStub{
		survey: &Survey{ID: "s1", Name: "Alumni"},
		questions: []*Question{
			{ID: "q1", Text: "Your name?", DisplayOrder: 1},
			{ID: "q2", Text: "Methods used?", Type: TypeMultiChoice, DisplayOrder: 2},
			{ID: "q3", Text: "Employed?", Type: TypeBoolean, DisplayOrder: 3},
		},
		responses: []*ResponseRecord{
			{SurveyID: "s1", RespondentID: "bob", UpdatedAt: at, Answers: map[string]AnswerValue{
				"q1": StringAnswer("Bob"),
			}},
			{SurveyID: "s1", RespondentID: "alice", UpdatedAt: at, Answers: map[string]AnswerValue{
				"q1": StringAnswer("Alice"),
				"q2": ListAnswer("Referrals", "Career fair"),
				"q3": BoolAnswer(true),
			}},
		},
	}
	svc := NewExportService(store)

	res, err := svc.ResponsesCSV("s1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if res.Filename != "survey_s1_responses.csv" {
		t.Fatalf("unexpected filename %q", res.Filename)
	}
	rows, err := csv.NewReader(strings.NewReader(string(res.Data))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	wantHeader := []string{"respondent_id", "submitted_at", "Your name?", "Methods used?", "Employed?"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Fatalf("header mismatch:\nwant %v\n got %v", wantHeader, rows[0])
	}
	// Rows are sorted by respondent.
	if rows[1][0] != "alice" || rows[2][0] != "bob" {
		t.Fatalf("rows not sorted by respondent: %v", rows)
	}
	if rows[1][3] != "Referrals; Career fair" {
		t.Fatalf("multi-choice cell wrong: %q", rows[1][3])
	}
	if rows[1][4] != "true" {
		t.Fatalf("bool cell wrong: %q", rows[1][4])
	}
	// Unanswered questions are empty cells.
	if rows[2][3] != "" || rows[2][4] != "" {
		t.Fatalf("expected empty cells for bob, got %v", rows[2])
	}
}

func TestResponsesCSVUnknownSurvey(t *testing.T) {
	svc := NewExportService(&exportStub{})
	_, err := svc.ResponsesCSV("ghost")
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

type ExportStore interface {
	GetSurvey(id string) (*Survey, error)
	ListQuestions(surveyID string) ([]*Question, error)
	ListResponses(surveyID string) ([]*ResponseRecord, error)
}

type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders a survey's responses as a wide CSV for admins: one
// row per respondent, one column per question in display order.
type ExportService struct {
	store ExportStore
}

func NewExportService(store ExportStore) *ExportService {
	return &ExportService{store: store}
}

func (s *ExportService) ResponsesCSV(surveyID string) (*ExportResult, error) {
	if strings.TrimSpace(surveyID) == "" {
		return nil, NewInvalidError("survey_id required")
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
	responses, err := s.store.ListResponses(surveyID)
	if err != nil {
		return nil, fmt.Errorf("load responses: %w", err)
	}
	sort.Slice(responses, func(i, j int) bool {
		return responses[i].RespondentID < responses[j].RespondentID
	})

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := make([]string, 0, 2+len(questions))
	header = append(header, "respondent_id", "submitted_at")
	for _, q := range questions {
		header = append(header, q.Text)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, rec := range responses {
		row := make([]string, 0, len(header))
		row = append(row, rec.RespondentID, rec.UpdatedAt.UTC().Format(time.RFC3339))
		for _, q := range questions {
			v, ok := rec.Answers[q.ID]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, answerCell(v))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename:    "survey_" + surveyID + "_responses.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func answerCell(v AnswerValue) string {
	switch v.Kind {
	case KindList:
		return strings.Join(v.List, "; ")
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

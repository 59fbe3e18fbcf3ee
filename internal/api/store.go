package api

import (
	"sort"
	"strings"
	"sync"

	"github.com/Pyae-Sone-Chan-Thar-Aung/Alumni-sub001/internal/services"
)

// memoryStore is the in-memory Store used by tests and by the server when no
// database path is configured. Question order numbers are handed out under
// the same lock that stores the question, so sequential and concurrent
// authors alike get unique, gapless positions.
type memoryStore struct {
	mu        sync.RWMutex
	surveys   map[string]*services.Survey
	questions map[string][]*services.Question // by survey, display order
	responses map[string]*services.ResponseRecord
	analytics map[string]map[string]any
	users     map[string]*services.User // by email
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() Store {
	return newMemoryStore()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		surveys:   map[string]*services.Survey{},
		questions: map[string][]*services.Question{},
		responses: map[string]*services.ResponseRecord{},
		analytics: map[string]map[string]any{},
		users:     map[string]*services.User{},
	}
}

func responseKey(surveyID, respondentID string) string {
	return surveyID + "\x00" + respondentID
}

func (s *memoryStore) InsertSurvey(sv *services.Survey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sv
	s.surveys[sv.ID] = &cp
	return nil
}

func (s *memoryStore) GetSurvey(id string) (*services.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sv, ok := s.surveys[id]
	if !ok {
		return nil, nil
	}
	cp := *sv
	return &cp, nil
}

func (s *memoryStore) ListActiveSurveys() ([]*services.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.Survey{}
	for _, sv := range s.surveys {
		if sv.IsActive {
			cp := *sv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memoryStore) InsertQuestion(q *services.Question) (*services.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *q
	cp.Options = append([]string(nil), q.Options...)
	cp.DisplayOrder = len(s.questions[q.SurveyID]) + 1
	s.questions[q.SurveyID] = append(s.questions[q.SurveyID], &cp)
	out := cp
	return &out, nil
}

func (s *memoryStore) ListQuestions(surveyID string) ([]*services.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.questions[surveyID]
	out := make([]*services.Question, 0, len(stored))
	for _, q := range stored {
		cp := *q
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memoryStore) GetResponse(surveyID, respondentID string) (*services.ResponseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.responses[responseKey(surveyID, respondentID)]
	if !ok {
		return nil, nil
	}
	return copyResponse(rec), nil
}

func (s *memoryStore) UpsertResponse(rec *services.ResponseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[responseKey(rec.SurveyID, rec.RespondentID)] = copyResponse(rec)
	return nil
}

func (s *memoryStore) ListResponses(surveyID string) ([]*services.ResponseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.ResponseRecord{}
	for _, rec := range s.responses {
		if rec.SurveyID == surveyID {
			out = append(out, copyResponse(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RespondentID < out[j].RespondentID })
	return out, nil
}

func (s *memoryStore) MergeAnalyticsFields(respondentID string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.analytics[respondentID]
	if rec == nil {
		rec = map[string]any{}
		s.analytics[respondentID] = rec
	}
	for k, v := range fields {
		rec[k] = v
	}
	return nil
}

// AnalyticsRecord returns a copy of the flat analytics row for a respondent,
// or nil when nothing has been projected yet.
func (s *memoryStore) AnalyticsRecord(respondentID string) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.analytics[respondentID]
	if !ok {
		return nil
	}
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func (s *memoryStore) FindUserByEmail(email string) (*services.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memoryStore) AddUser(u *services.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[strings.ToLower(u.Email)] = &cp
	return nil
}

func copyResponse(rec *services.ResponseRecord) *services.ResponseRecord {
	cp := *rec
	cp.Answers = make(map[string]services.AnswerValue, len(rec.Answers))
	for k, v := range rec.Answers {
		cp.Answers[k] = v
	}
	return &cp
}

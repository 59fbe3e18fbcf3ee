package services

import (
	"testing"
	"time"
)

type listingStub struct {
	surveys   []*Survey
	responses map[string]*ResponseRecord
}

func (s *listingStub) ListActiveSurveys() ([]*Survey, error) { return s.surveys, nil }

func (s *listingStub) GetResponse(surveyID, respondentID string) (*ResponseRecord, error) {
	return s.responses[respKey(surveyID, respondentID)], nil
}

func TestOverview(t *testing.T) {
	submitted := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	store := &listingStub{
		surveys: []*Survey{
			{ID: "s1", Name: "Alumni 2025"},
			{ID: "s2", Name: "Alumni 2026"},
		},
		responses: map[string]*ResponseRecord{
			respKey("s1", "alice"): {SurveyID: "s1", RespondentID: "alice", UpdatedAt: submitted},
		},
	}
	svc := NewListingService(store)

	out, err := svc.Overview("alice")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(out))
	}
	if !out[0].Submitted || !out[0].SubmittedAt.Equal(submitted) {
		t.Fatalf("s1 should be submitted at %v, got %+v", submitted, out[0])
	}
	if out[1].Submitted {
		t.Fatalf("s2 should not be submitted, got %+v", out[1])
	}
}

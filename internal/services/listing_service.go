package services

import (
	"fmt"
	"time"
)

type ListingStore interface {
	ListActiveSurveys() ([]*Survey, error)
	GetResponse(surveyID, respondentID string) (*ResponseRecord, error)
}

// SurveyStatus pairs an active survey with one respondent's progress on it.
// A submitted survey can still be reopened and resubmitted.
type SurveyStatus struct {
	Survey      *Survey   `json:"survey"`
	Submitted   bool      `json:"submitted"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ListingService is a read-only composition: active surveys plus per-survey
// completion for one respondent.
type ListingService struct {
	store ListingStore
}

func NewListingService(store ListingStore) *ListingService {
	return &ListingService{store: store}
}

func (s *ListingService) Overview(respondentID string) ([]SurveyStatus, error) {
	surveys, err := s.store.ListActiveSurveys()
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	out := make([]SurveyStatus, 0, len(surveys))
	for _, sv := range surveys {
		st := SurveyStatus{Survey: sv}
		rec, err := s.store.GetResponse(sv.ID, respondentID)
		if err != nil {
			return nil, fmt.Errorf("load response for %s: %w", sv.ID, err)
		}
		if rec != nil {
			st.Submitted = true
			st.SubmittedAt = rec.UpdatedAt
		}
		out = append(out, st)
	}
	return out, nil
}

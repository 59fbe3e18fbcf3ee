package services

import "time"

// Survey is an authored, named set of questions offered to portal members.
// Surveys are never mutated or deleted by the engine; retiring one is done by
// flipping IsActive outside this package.
type Survey struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Question is one prompt within a survey. Options is present only for the
// choice-family types. DisplayOrder is unique within a survey and fixes the
// render and iteration order; it is assigned by the store at insert time.
type Question struct {
	ID           string       `json:"id"`
	SurveyID     string       `json:"survey_id"`
	Text         string       `json:"text"`
	Type         QuestionType `json:"type"`
	Required     bool         `json:"required"`
	Section      string       `json:"section,omitempty"`
	Options      []string     `json:"options,omitempty"`
	DisplayOrder int          `json:"display_order"`
	AnalyticsKey string       `json:"analytics_key,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// QuestionDraft carries the author-supplied fields for a new question.
// OptionsRaw is the untouched option string; the service runs it through
// ParseOptions for choice-family types.
type QuestionDraft struct {
	Text         string
	Type         QuestionType
	Required     bool
	Section      string
	OptionsRaw   string
	AnalyticsKey string
}

// ResponseRecord is one respondent's full answer set for one survey. There is
// at most one record per (survey, respondent) pair; resubmission replaces the
// whole Answers map and refreshes UpdatedAt.
type ResponseRecord struct {
	SurveyID     string                 `json:"survey_id"`
	RespondentID string                 `json:"respondent_id"`
	Answers      map[string]AnswerValue `json:"answers"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// User is a registered portal member.
type User struct {
	ID        string
	Email     string
	Name      string
	PassHash  []byte
	CreatedAt time.Time
}

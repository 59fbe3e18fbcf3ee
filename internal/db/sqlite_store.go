package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Pyae-Sone-Chan-Thar-Aung/Alumni-sub001/internal/api"
	"github.com/Pyae-Sone-Chan-Thar-Aung/Alumni-sub001/internal/services"
)

// SQLiteStore persists the survey engine's records in SQLite. Choice lists,
// answer maps, and analytics rows are stored as JSON text columns; times as
// RFC3339Nano strings.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func NewStore(db *sql.DB) (api.Store, error) {
	return NewSQLiteStore(db)
}

var _ api.Store = (*SQLiteStore)(nil)

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func int64ToBool(v int64) bool { return v != 0 }

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func encodeOptions(opts []string) (sql.NullString, error) {
	if len(opts) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeOptions(ns sql.NullString) []string {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		return nil
	}
	return out
}

// --- Surveys ---

func (s *SQLiteStore) InsertSurvey(sv *services.Survey) error {
	if sv == nil {
		return errors.New("nil survey")
	}
	_, err := s.db.Exec(`INSERT INTO surveys (id, name, description, is_active, created_by, created_at)
	  VALUES (?, ?, ?, ?, ?, ?)`,
		sv.ID, sv.Name, toNullString(sv.Description), boolToInt64(sv.IsActive), sv.CreatedBy, formatTime(sv.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert survey: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetSurvey(id string) (*services.Survey, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	row := s.db.QueryRow(`SELECT id, name, description, is_active, created_by, created_at FROM surveys WHERE id = ?`, id)
	sv, err := scanSurvey(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get survey: %w", err)
	}
	return sv, nil
}

func (s *SQLiteStore) ListActiveSurveys() ([]*services.Survey, error) {
	rows, err := s.db.Query(`SELECT id, name, description, is_active, created_by, created_at
	  FROM surveys WHERE is_active = 1 ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list active surveys: %w", err)
	}
	defer rows.Close()
	var out []*services.Survey
	for rows.Next() {
		sv, err := scanSurvey(rows)
		if err != nil {
			return nil, fmt.Errorf("scan survey: %w", err)
		}
		out = append(out, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active surveys: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSurvey(row rowScanner) (*services.Survey, error) {
	var sv services.Survey
	var description sql.NullString
	var active int64
	var created string
	if err := row.Scan(&sv.ID, &sv.Name, &description, &active, &sv.CreatedBy, &created); err != nil {
		return nil, err
	}
	sv.Description = description.String
	sv.IsActive = int64ToBool(active)
	sv.CreatedAt = parseTime(created)
	return &sv, nil
}

// --- Questions ---

// InsertQuestion assigns display_order inside the INSERT itself, so the
// next position is computed and claimed in one statement. SQLite's single
// writer guarantees two authors cannot observe the same MAX.
func (s *SQLiteStore) InsertQuestion(q *services.Question) (*services.Question, error) {
	if q == nil {
		return nil, errors.New("nil question")
	}
	options, err := encodeOptions(q.Options)
	if err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO questions
	  (id, survey_id, text, type, required, section, options, display_order, analytics_key, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?,
	    (SELECT COALESCE(MAX(display_order), 0) + 1 FROM questions WHERE survey_id = ?),
	    ?, ?)`,
		q.ID, q.SurveyID, q.Text, string(q.Type), boolToInt64(q.Required), toNullString(q.Section),
		options, q.SurveyID, toNullString(q.AnalyticsKey), formatTime(q.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}
	stored := *q
	stored.Options = append([]string(nil), q.Options...)
	row := s.db.QueryRow(`SELECT display_order FROM questions WHERE id = ?`, q.ID)
	if err := row.Scan(&stored.DisplayOrder); err != nil {
		return nil, fmt.Errorf("read assigned order: %w", err)
	}
	return &stored, nil
}

func (s *SQLiteStore) ListQuestions(surveyID string) ([]*services.Question, error) {
	if strings.TrimSpace(surveyID) == "" {
		return nil, nil
	}
	rows, err := s.db.Query(`SELECT id, survey_id, text, type, required, section, options, display_order, analytics_key, created_at
	  FROM questions WHERE survey_id = ? ORDER BY display_order ASC`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()
	var out []*services.Question
	for rows.Next() {
		var q services.Question
		var qtype string
		var required int64
		var section, options, analyticsKey sql.NullString
		var created string
		if err := rows.Scan(&q.ID, &q.SurveyID, &q.Text, &qtype, &required, &section, &options, &q.DisplayOrder, &analyticsKey, &created); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Type = services.QuestionType(qtype)
		q.Required = int64ToBool(required)
		q.Section = section.String
		q.Options = decodeOptions(options)
		q.AnalyticsKey = analyticsKey.String
		q.CreatedAt = parseTime(created)
		out = append(out, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return out, nil
}

// --- Responses ---

func (s *SQLiteStore) UpsertResponse(rec *services.ResponseRecord) error {
	if rec == nil {
		return errors.New("nil response")
	}
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO responses (survey_id, respondent_id, answers, updated_at)
	  VALUES (?, ?, ?, ?)
	  ON CONFLICT(survey_id, respondent_id) DO UPDATE SET answers = excluded.answers, updated_at = excluded.updated_at`,
		rec.SurveyID, rec.RespondentID, string(answers), formatTime(rec.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upsert response: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetResponse(surveyID, respondentID string) (*services.ResponseRecord, error) {
	if strings.TrimSpace(surveyID) == "" || strings.TrimSpace(respondentID) == "" {
		return nil, nil
	}
	row := s.db.QueryRow(`SELECT survey_id, respondent_id, answers, updated_at
	  FROM responses WHERE survey_id = ? AND respondent_id = ?`, surveyID, respondentID)
	rec, err := scanResponse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get response: %w", err)
	}
	return rec, nil
}

func (s *SQLiteStore) ListResponses(surveyID string) ([]*services.ResponseRecord, error) {
	rows, err := s.db.Query(`SELECT survey_id, respondent_id, answers, updated_at
	  FROM responses WHERE survey_id = ? ORDER BY respondent_id ASC`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()
	var out []*services.ResponseRecord
	for rows.Next() {
		rec, err := scanResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	return out, nil
}

func scanResponse(row rowScanner) (*services.ResponseRecord, error) {
	var rec services.ResponseRecord
	var answers, updated string
	if err := row.Scan(&rec.SurveyID, &rec.RespondentID, &answers, &updated); err != nil {
		return nil, err
	}
	rec.Answers = map[string]services.AnswerValue{}
	if err := json.Unmarshal([]byte(answers), &rec.Answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	rec.UpdatedAt = parseTime(updated)
	return &rec, nil
}

// --- Analytics ---

// MergeAnalyticsFields folds the projected fields into the respondent's flat
// analytics row inside one transaction: keys in fields overwrite, everything
// else already on the row survives.
func (s *SQLiteStore) MergeAnalyticsFields(respondentID string, fields map[string]any) error {
	if strings.TrimSpace(respondentID) == "" || len(fields) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin analytics merge: %w", err)
	}
	defer tx.Rollback()

	merged := map[string]any{}
	var existing string
	err = tx.QueryRow(`SELECT fields FROM alumni_analytics WHERE respondent_id = ?`, respondentID).Scan(&existing)
	switch {
	case err == nil:
		if uerr := json.Unmarshal([]byte(existing), &merged); uerr != nil {
			return fmt.Errorf("decode analytics row: %w", uerr)
		}
	case errors.Is(err, sql.ErrNoRows):
		// first projection for this respondent
	default:
		return fmt.Errorf("read analytics row: %w", err)
	}
	for k, v := range fields {
		merged[k] = v
	}
	encoded, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode analytics row: %w", err)
	}
	_, err = tx.Exec(`INSERT INTO alumni_analytics (respondent_id, fields, updated_at) VALUES (?, ?, ?)
	  ON CONFLICT(respondent_id) DO UPDATE SET fields = excluded.fields, updated_at = excluded.updated_at`,
		respondentID, string(encoded), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("write analytics row: %w", err)
	}
	return tx.Commit()
}

// --- Users ---

func (s *SQLiteStore) FindUserByEmail(email string) (*services.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, nil
	}
	row := s.db.QueryRow(`SELECT id, email, name, pass_hash, created_at FROM users WHERE email = ?`, email)
	var u services.User
	var name sql.NullString
	var created string
	if err := row.Scan(&u.ID, &u.Email, &name, &u.PassHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.Name = name.String
	u.CreatedAt = parseTime(created)
	return &u, nil
}

func (s *SQLiteStore) AddUser(u *services.User) error {
	if u == nil {
		return errors.New("nil user")
	}
	_, err := s.db.Exec(`INSERT INTO users (id, email, name, pass_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, toNullString(u.Name), u.PassHash, formatTime(u.CreatedAt))
	if err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	return nil
}

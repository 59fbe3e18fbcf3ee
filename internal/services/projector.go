package services

import (
	"strconv"
	"strings"
)

// The legacy alumni analytics schema: a fixed, flat set of column names that
// reporting reads. Questions opt into it by carrying one of these keys; any
// other annotation contributes nothing. The record is keyed by respondent
// alone, so two surveys writing the same key overwrite each other for that
// respondent — kept as-is because reporting depends on the single flat row.
var knownAnalyticsKeys = map[string]struct{}{
	// identity / contact
	"full_name":       {},
	"email":           {},
	"phone":           {},
	"current_city":    {},
	"current_country": {},
	// education
	"graduation_year": {},
	"major":           {},
	"degree_level":    {},
	"further_study":   {},
	// employment
	"employment_status":     {},
	"current_employer":      {},
	"job_title":             {},
	"industry":              {},
	"salary_range":          {},
	"employment_start_year": {},
	"first_job_related":     {},
	"months_to_first_job":   {},
	// job search
	"job_search_method":    {},
	"job_search_duration":  {},
	"used_career_services": {},
	// feedback
	"curriculum_helpful":   {},
	"would_recommend":      {},
	"overall_satisfaction": {},
	"skills_gap":           {},
}

// Columns holding a calendar year; non-numeric input degrades to null.
var yearKeys = map[string]struct{}{
	"graduation_year":       {},
	"employment_start_year": {},
}

// Columns with yes/no semantics; free-text that is not a recognizable
// yes/no degrades to null.
var boolKeys = map[string]struct{}{
	"further_study":        {},
	"first_job_related":    {},
	"used_career_services": {},
	"curriculum_helpful":   {},
	"would_recommend":      {},
}

// KnownAnalyticsKey reports membership in the fixed legacy column set.
func KnownAnalyticsKey(key string) bool {
	_, ok := knownAnalyticsKeys[key]
	return ok
}

// Project maps a response's answers onto the flat legacy analytics record.
// Only questions annotated with a known key contribute; each contributing
// answer is coerced per the key's column class. Values are string, int, bool,
// or nil. Project never fails: a value the column cannot hold becomes nil
// instead of aborting the projection.
func Project(questions []*Question, answers map[string]AnswerValue) map[string]any {
	out := map[string]any{}
	for _, q := range questions {
		if q.AnalyticsKey == "" || !KnownAnalyticsKey(q.AnalyticsKey) {
			continue
		}
		v, ok := answers[q.ID]
		if !ok {
			continue
		}
		out[q.AnalyticsKey] = coerceAnalyticsValue(q.AnalyticsKey, v)
	}
	return out
}

func coerceAnalyticsValue(key string, v AnswerValue) any {
	if _, ok := yearKeys[key]; ok {
		return coerceYear(v)
	}
	if _, ok := boolKeys[key]; ok {
		return coerceYesNo(v)
	}
	var s string
	switch v.Kind {
	case KindList:
		s = strings.Join(v.List, ", ")
	case KindNumber:
		s = strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return v.Bool
	default:
		s = v.Str
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func coerceYear(v AnswerValue) any {
	switch v.Kind {
	case KindNumber:
		return int(v.Num)
	case KindString:
		n, err := strconv.Atoi(strings.TrimSpace(v.Str))
		if err != nil {
			return nil
		}
		return n
	}
	return nil
}

func coerceYesNo(v AnswerValue) any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "true", "yes":
			return true
		case "false", "no":
			return false
		}
	}
	return nil
}

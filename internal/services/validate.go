package services

// MissingRequired returns the prompt text of every required question left
// unanswered, following the display order of questions. A question is
// unanswered when its ID is absent from the map, or the value is a blank
// string, or a zero-length list. The first entry is the one surfaced to the
// respondent, so the ordering must be deterministic.
func MissingRequired(questions []*Question, answers map[string]AnswerValue) []string {
	var missing []string
	for _, q := range questions {
		if !q.Required {
			continue
		}
		v, ok := answers[q.ID]
		if !ok || v.isEmpty() {
			missing = append(missing, q.Text)
		}
	}
	return missing
}

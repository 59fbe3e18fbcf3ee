package api

import (
	"reflect"
	"testing"
	"time"

	"github.com/Pyae-Sone-Chan-Thar-Aung/Alumni-sub001/internal/services"
)

func TestMemoryStoreQuestionOrder(t *testing.T) {
	store := newMemoryStore()
	_ = store.InsertSurvey(&services.Survey{ID: "s1", Name: "s", IsActive: true})

	for i, text := range []string{"one", "two", "three"} {
		q, err := store.InsertQuestion(&services.Question{ID: "q" + text, SurveyID: "s1", Text: text})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if q.DisplayOrder != i+1 {
			t.Fatalf("question %q: expected order %d, got %d", text, i+1, q.DisplayOrder)
		}
	}
	qs, err := store.ListQuestions("s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(qs) != 3 || qs[0].Text != "one" || qs[2].Text != "three" {
		t.Fatalf("unexpected listing: %+v", qs)
	}
}

func TestMemoryStoreResponseRoundTrip(t *testing.T) {
	store := newMemoryStore()
	rec := &services.ResponseRecord{
		SurveyID:     "s1",
		RespondentID: "alice",
		Answers:      map[string]services.AnswerValue{"q1": services.StringAnswer("hi")},
		UpdatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.UpsertResponse(rec); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	// Mutating the caller's map must not reach the stored copy.
	rec.Answers["q1"] = services.StringAnswer("mutated")

	got, err := store.GetResponse("s1", "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Answers["q1"].Str != "hi" {
		t.Fatalf("store should hold its own copy, got %+v", got.Answers["q1"])
	}
	if missing, err := store.GetResponse("s1", "bob"); err != nil || missing != nil {
		t.Fatalf("expected nil,nil for unknown respondent, got %v,%v", missing, err)
	}
}

func TestMemoryStoreAnalyticsMerge(t *testing.T) {
	store := newMemoryStore()
	if err := store.MergeAnalyticsFields("alice", map[string]any{"major": "CS", "graduation_year": 2021}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if err := store.MergeAnalyticsFields("alice", map[string]any{"graduation_year": 2022}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	got := store.AnalyticsRecord("alice")
	want := map[string]any{"major": "CS", "graduation_year": 2022}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merge should overwrite shared keys and keep the rest:\nwant %v\n got %v", want, got)
	}
	if rec := store.AnalyticsRecord("bob"); rec != nil {
		t.Fatalf("expected nil for unknown respondent, got %v", rec)
	}
}

func TestMemoryStoreListActiveSurveys(t *testing.T) {
	store := newMemoryStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = store.InsertSurvey(&services.Survey{ID: "b", Name: "B", IsActive: true, CreatedAt: base.Add(time.Hour)})
	_ = store.InsertSurvey(&services.Survey{ID: "a", Name: "A", IsActive: true, CreatedAt: base})
	_ = store.InsertSurvey(&services.Survey{ID: "c", Name: "C", IsActive: false, CreatedAt: base})

	out, err := store.ListActiveSurveys()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "b" {
		t.Fatalf("expected [a b] in creation order, got %+v", out)
	}
}

func TestMemoryStoreUsersByEmailCaseInsensitive(t *testing.T) {
	store := newMemoryStore()
	if err := store.AddUser(&services.User{ID: "u1", Email: "Alice@Example.com"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	u, err := store.FindUserByEmail("alice@example.com")
	if err != nil || u == nil || u.ID != "u1" {
		t.Fatalf("lookup should be case-insensitive, got %v,%v", u, err)
	}
}

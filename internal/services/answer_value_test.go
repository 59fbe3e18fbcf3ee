package services

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAnswerValueDecodeShapes(t *testing.T) {
	var m map[string]AnswerValue
	payload := `{"a":"hello","b":42.5,"c":true,"d":["x","y"]}`
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m["a"].Kind != KindString || m["a"].Str != "hello" {
		t.Fatalf("string answer wrong: %+v", m["a"])
	}
	if m["b"].Kind != KindNumber || m["b"].Num != 42.5 {
		t.Fatalf("number answer wrong: %+v", m["b"])
	}
	if m["c"].Kind != KindBool || !m["c"].Bool {
		t.Fatalf("bool answer wrong: %+v", m["c"])
	}
	if m["d"].Kind != KindList || !reflect.DeepEqual(m["d"].List, []string{"x", "y"}) {
		t.Fatalf("list answer wrong: %+v", m["d"])
	}
}

func TestAnswerValueRejectsObjects(t *testing.T) {
	var v AnswerValue
	if err := json.Unmarshal([]byte(`{"nested":1}`), &v); err == nil {
		t.Fatal("expected error for object value")
	}
	if err := json.Unmarshal([]byte(`null`), &v); err == nil {
		t.Fatal("expected error for null value")
	}
	if err := json.Unmarshal([]byte(`["a", 1]`), &v); err == nil {
		t.Fatal("expected error for mixed array")
	}
}

func TestAnswerValueRoundTrip(t *testing.T) {
	in := map[string]AnswerValue{
		"s": StringAnswer("text"),
		"n": NumberAnswer(7),
		"b": BoolAnswer(false),
		"l": ListAnswer("one", "two"),
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]AnswerValue
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip changed values:\n in: %+v\nout: %+v", in, out)
	}
}

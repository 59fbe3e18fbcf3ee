package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// AnswerKind tags the shape carried by an AnswerValue.
type AnswerKind int

const (
	KindString AnswerKind = iota
	KindNumber
	KindBool
	KindList
)

// AnswerValue is one respondent answer: a string, a number, a boolean, or an
// ordered list of strings (multi-choice). An answer is never partially
// present; either a question has a fully formed value in the answers map or
// it has no entry at all.
type AnswerValue struct {
	Kind AnswerKind
	Str  string
	Num  float64
	Bool bool
	List []string
}

func StringAnswer(s string) AnswerValue  { return AnswerValue{Kind: KindString, Str: s} }
func NumberAnswer(n float64) AnswerValue { return AnswerValue{Kind: KindNumber, Num: n} }
func BoolAnswer(b bool) AnswerValue      { return AnswerValue{Kind: KindBool, Bool: b} }

func ListAnswer(items ...string) AnswerValue {
	return AnswerValue{Kind: KindList, List: items}
}

// MarshalJSON writes the native JSON shape for the kind, not the struct.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindList:
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	default:
		return json.Marshal(v.Str)
	}
}

var errUnsupportedAnswer = errors.New("unsupported answer value")

// UnmarshalJSON accepts a JSON string, number, boolean, or array of strings.
// Anything else (objects, mixed arrays, null) is rejected.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errUnsupportedAnswer
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringAnswer(s)
		return nil
	case '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return errUnsupportedAnswer
		}
		*v = ListAnswer(list...)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolAnswer(b)
		return nil
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return errUnsupportedAnswer
		}
		*v = NumberAnswer(n)
		return nil
	}
}

// isEmpty reports whether the value counts as unanswered: blank strings and
// zero-length lists do; numbers and booleans never do, so false and 0 still
// satisfy a required question.
func (v AnswerValue) isEmpty() bool {
	switch v.Kind {
	case KindString:
		return strings.TrimSpace(v.Str) == ""
	case KindList:
		return len(v.List) == 0
	}
	return false
}

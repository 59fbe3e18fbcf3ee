package services

import "strings"

// QuestionType enumerates the closed set of answer shapes the engine supports.
// The set is fixed: question kinds are data, but the registry of kinds is not,
// so every coercion rule can switch exhaustively over these constants.
type QuestionType string

const (
	TypeText         QuestionType = "text"
	TypeLongText     QuestionType = "long_text"
	TypeNumber       QuestionType = "number"
	TypeDate         QuestionType = "date"
	TypeBoolean      QuestionType = "boolean"
	TypeSingleSelect QuestionType = "single_select"
	TypeSingleChoice QuestionType = "single_choice"
	TypeMultiChoice  QuestionType = "multi_choice"
)

// RequiresOptions reports whether authors supply a choice list for this kind.
func (t QuestionType) RequiresOptions() bool {
	switch t {
	case TypeSingleSelect, TypeSingleChoice, TypeMultiChoice:
		return true
	}
	return false
}

// Valid reports whether t is a member of the registry.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeText, TypeLongText, TypeNumber, TypeDate, TypeBoolean,
		TypeSingleSelect, TypeSingleChoice, TypeMultiChoice:
		return true
	}
	return false
}

// ParseQuestionType maps a wire value onto the registry.
func ParseQuestionType(raw string) (QuestionType, error) {
	t := QuestionType(strings.TrimSpace(raw))
	if !t.Valid() {
		return "", NewInvalidError("unknown question type: " + raw)
	}
	return t, nil
}

// Package model defines the portfolio entities and their payload rules.
package model

import (
	"errors"
	"fmt"
)

// Kind tags an entity type. Kinds feed cache key construction and
// metric attributes, so values must be stable.
type Kind string

const (
	KindProfile Kind = "profile"
	KindProject Kind = "project"
	KindSkill   Kind = "skill"
)

func (k Kind) String() string { return string(k) }

// ErrValidation is the sentinel all payload validation failures match.
var ErrValidation = errors.New("model: invalid payload")

// ValidationError reports which field of a write payload was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

// Error returns the error message.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("model: invalid payload: field %q %s", e.Field, e.Reason)
}

// Is reports whether this error matches the target.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func required(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

func maxLen(field, value string, limit int) error {
	if len(value) > limit {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("exceeds %d characters", limit)}
	}
	return nil
}

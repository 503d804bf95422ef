package domain

import (
	"strings"
	"unicode/utf8"
)

// MinProjectNameLength is the minimum number of characters in a project name.
const MinProjectNameLength = 3

// MsgProjectNameTooShort is the message reported for a missing or short name.
const MsgProjectNameTooShort = "Project name must be at least 3 characters"

// Project represents a single project record.
type Project struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// ValidateProjectName checks that name is present and long enough.
// Length is counted in characters so multi-byte names are not penalised.
func ValidateProjectName(name string) error {
	if utf8.RuneCountInString(name) < MinProjectNameLength {
		return &ValidationError{Field: "name", Message: MsgProjectNameTooShort}
	}
	return nil
}

// SameName reports whether two project names collide under the
// case-insensitive uniqueness rule.
func SameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

// WithName returns a copy of the project carrying the given name.
func (p Project) WithName(name string) Project {
	return Project{ID: p.ID, Name: name}
}

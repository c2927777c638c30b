package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryNameTaken   = errors.New("category name already exists")
)

// FieldViolation is one failed validation rule on one field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field-rule violation found in a
// candidate. Error() joins the messages so the whole list survives
// plain error propagation.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, ", ")
}

// CategoryInUseError blocks deletion of a category that transactions
// still reference by name.
type CategoryInUseError struct {
	Count int64
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("cannot delete: in use by %d transaction(s)", e.Count)
}

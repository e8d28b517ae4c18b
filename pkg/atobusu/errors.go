package atobusu

import (
	"errors"
	"fmt"
)

// PatternError reports malformed or ambiguous embedded-call syntax that
// the tokenizer cannot unambiguously close. It carries the offending
// span so callers can point at the broken template text.
type PatternError struct {
	Message string
	Span    string
	Offset  int
}

func (e *PatternError) Error() string {
	if e.Span != "" {
		return fmt.Sprintf("pattern error at offset %d near %q: %s", e.Offset, e.Span, e.Message)
	}
	return fmt.Sprintf("pattern error at offset %d: %s", e.Offset, e.Message)
}

// NewPatternError creates a pattern error with the offending span.
func NewPatternError(message, span string, offset int) error {
	return &PatternError{
		Message: message,
		Span:    span,
		Offset:  offset,
	}
}

// ResolutionError reports a required field absent from the data context
// with no defined default. Product code and date placeholders have no
// defaults; a render that hits this error produces no output.
type ResolutionError struct {
	Field   string
	Pattern string
}

func (e *ResolutionError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("resolution error: no value for field %q (pattern %s)", e.Field, e.Pattern)
	}
	return fmt.Sprintf("resolution error: no value for field %q", e.Field)
}

// NewResolutionError creates a resolution error for a missing field.
func NewResolutionError(field, pattern string) error {
	return &ResolutionError{
		Field:   field,
		Pattern: pattern,
	}
}

// EncodingError reports input text containing byte sequences that cannot
// be interpreted as valid UTF-8 characters.
type EncodingError struct {
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error: invalid UTF-8 sequence at byte %d", e.Offset)
}

// NewEncodingError creates an encoding error at the given byte offset.
func NewEncodingError(offset int) error {
	return &EncodingError{Offset: offset}
}

// IsPatternError checks if an error is a pattern error.
func IsPatternError(err error) bool {
	var pe *PatternError
	return errors.As(err, &pe)
}

// IsResolutionError checks if an error is a resolution error.
func IsResolutionError(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re)
}

// IsEncodingError checks if an error is an encoding error.
func IsEncodingError(err error) bool {
	var ee *EncodingError
	return errors.As(err, &ee)
}

package skeleton

import (
	"errors"

	"github.com/mvp-joe/loppers/internal/grammar"
	"github.com/mvp-joe/loppers/internal/syntax"
)

var (
	// ErrUnsupportedLanguage indicates the language id has no registered grammar.
	ErrUnsupportedLanguage = grammar.ErrUnsupportedLanguage

	// ErrParseFailure indicates the source did not parse into an error-free tree.
	ErrParseFailure = syntax.ErrParseFailure

	// ErrInvariantViolation indicates overlapping or unsorted deletion ranges, or a
	// body pattern that is inconsistent with its grammar.
	ErrInvariantViolation = errors.New("invariant violation")
)

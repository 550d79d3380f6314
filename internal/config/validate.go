package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/loppers/internal/grammar"
)

var (
	// ErrInvalidWorkers indicates a negative worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidFileSize indicates a negative file size limit
	ErrInvalidFileSize = errors.New("invalid file size limit")

	// ErrInvalidFormat indicates an unknown output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidPattern indicates an include glob that does not compile
	ErrInvalidPattern = errors.New("invalid include pattern")

	// ErrUnknownLanguage indicates a language override naming no registered language
	ErrUnknownLanguage = errors.New("unknown language override")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validateDiscovery(&cfg.Discovery)...)
	errs = append(errs, validateConcatenate(&cfg.Concatenate)...)
	errs = append(errs, validateLanguages(&cfg.Languages)...)

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateDiscovery(cfg *DiscoveryConfig) []error {
	var errs []error

	if cfg.MaxFileSizeKB < 0 {
		errs = append(errs, fmt.Errorf("%w: max_file_size_kb cannot be negative, got %d", ErrInvalidFileSize, cfg.MaxFileSizeKB))
	}

	for _, pattern := range cfg.Include {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	return errs
}

func validateConcatenate(cfg *ConcatenateConfig) []error {
	var errs []error

	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	switch strings.ToLower(cfg.Format) {
	case FormatText, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("%w: must be '%s' or '%s', got '%s'", ErrInvalidFormat, FormatText, FormatYAML, cfg.Format))
	}

	return errs
}

func validateLanguages(cfg *LanguagesConfig) []error {
	var errs []error

	for ext, id := range cfg.Overrides {
		if _, err := grammar.Resolve(id); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s -> %s", ErrUnknownLanguage, ext, id))
		}
	}

	return errs
}

// joinErrors combines multiple errors into a single error with clear formatting.
// Every input stays reachable through errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	args := make([]any, len(errs))
	for i, err := range errs {
		args[i] = err
	}

	return fmt.Errorf("validation failed:"+strings.Repeat("\n  - %w", len(errs)), args...)
}

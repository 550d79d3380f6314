// Package skeleton removes executable bodies from source files while keeping
// signatures, class scaffolding, imports, comments, docstrings and decorators.
package skeleton

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/mvp-joe/loppers/internal/grammar"
	"github.com/mvp-joe/loppers/internal/syntax"
)

// Extractor produces skeletons. It holds no per-call state; one Extractor can serve
// any number of concurrent calls.
type Extractor struct {
	registry *grammar.Registry
	parser   syntax.Parser
	workers  int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithWorkers bounds the number of files ExtractBatch processes at once.
// Values below 1 mean runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Extractor) {
		e.workers = n
	}
}

// New creates an Extractor over the given registry and parser.
func New(registry *grammar.Registry, parser syntax.Parser, opts ...Option) *Extractor {
	e := &Extractor{
		registry: registry,
		parser:   parser,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.NumCPU()
	}
	return e
}

var defaultExtractor = New(grammar.Default(), syntax.NewTreeSitter())

// Default returns the extractor over the built-in languages and tree-sitter.
func Default() *Extractor {
	return defaultExtractor
}

// Extract returns the skeleton of source using the default extractor.
func Extract(source, languageID string) (string, error) {
	return defaultExtractor.Extract(source, languageID)
}

// Registry returns the registry languages are resolved against.
func (e *Extractor) Registry() *grammar.Registry {
	return e.registry
}

// Plan is what Extract would do to a source: the located declarations and the
// deletion ranges derived from them.
type Plan struct {
	Language     string
	Declarations []Declaration
	Ranges       []DeletionRange
}

// Removed returns the number of bodies that will be removed.
func (p *Plan) Removed() int {
	return len(p.Ranges)
}

// Plan parses source and computes its deletion ranges without rewriting.
func (e *Extractor) Plan(source []byte, languageID string) (*Plan, error) {
	lang, err := e.registry.Resolve(languageID)
	if err != nil {
		return nil, err
	}

	tree, err := e.parser.Parse(source, lang)
	if err != nil {
		if errors.Is(err, ErrParseFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailure, lang.ID, err)
	}
	defer tree.Close()

	decls, err := Locate(tree, lang, source)
	if err != nil {
		return nil, err
	}

	ranges, err := Resolve(source, decls)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Language:     lang.ID,
		Declarations: decls,
		Ranges:       ranges,
	}, nil
}

// Extract returns source with every removable body emptied.
func (e *Extractor) Extract(source, languageID string) (string, error) {
	src := []byte(source)
	plan, err := e.Plan(src, languageID)
	if err != nil {
		return "", err
	}
	return Rewrite(src, plan.Ranges)
}

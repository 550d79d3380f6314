package grammar

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unsafe"
)

// ErrUnsupportedLanguage is returned when a language id has no registered grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// BlockKind describes how a body is delimited in source text.
type BlockKind int

const (
	// KindDefault defers to the owning language's kind.
	KindDefault BlockKind = iota
	// KindNone marks a body that is never removed.
	KindNone
	// KindBraced bodies sit between an opening and a closing delimiter token ({ }).
	KindBraced
	// KindIndented bodies are delimited by indentation (Python).
	KindIndented
	// KindEndKeyword bodies are terminated by an `end` keyword (Ruby).
	KindEndKeyword
	// KindExpression is a concise single-expression body (arrow functions, lambdas).
	KindExpression
)

func (k BlockKind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindNone:
		return "none"
	case KindBraced:
		return "braced"
	case KindIndented:
		return "indented"
	case KindEndKeyword:
		return "end-keyword"
	case KindExpression:
		return "expression"
	default:
		return fmt.Sprintf("BlockKind(%d)", int(k))
	}
}

// Deletable reports whether bodies of this kind are removed.
func (k BlockKind) Deletable() bool {
	return k == KindBraced || k == KindIndented || k == KindEndKeyword
}

// CaptureRole says what a pattern's target capture means for its declaration.
type CaptureRole int

const (
	// RoleBody marks the removable body of a declaration.
	RoleBody CaptureRole = iota
	// RolePreserveLeading marks a node at the start of a body that must survive (docstrings).
	RolePreserveLeading
	// RoleDecorator marks a decorator or annotation attached to a declaration.
	RoleDecorator
)

func (r CaptureRole) String() string {
	switch r {
	case RoleBody:
		return "body"
	case RolePreserveLeading:
		return "preserve-leading"
	case RoleDecorator:
		return "decorator"
	default:
		return fmt.Sprintf("CaptureRole(%d)", int(r))
	}
}

// DeclCapture is the capture name every pattern uses for the owning declaration.
// Any other capture name in a pattern is the role target.
const DeclCapture = "decl"

// BodyPattern is a declarative tree-sitter query together with the role of what it captures.
type BodyPattern struct {
	Query string
	Role  CaptureRole
	// Kind overrides the language kind for bodies captured by this pattern.
	Kind BlockKind
}

// Language describes one registered grammar and how bodies are found in it.
type Language struct {
	ID         string
	Aliases    []string
	Extensions []string
	// Grammar returns the tree-sitter language pointer exported by a grammar binding.
	Grammar  func() unsafe.Pointer
	Kind     BlockKind
	Patterns []BodyPattern
}

// KindOf resolves the block kind a pattern assigns to its bodies.
func (l *Language) KindOf(p BodyPattern) BlockKind {
	if p.Kind != KindDefault {
		return p.Kind
	}
	return l.Kind
}

// Registry maps language ids and aliases to languages. It is immutable after construction
// and safe for concurrent use.
type Registry struct {
	byName    map[string]*Language
	byExt     map[string]string
	languages []*Language
}

// NewRegistry builds a registry from the given languages. Duplicate ids, aliases or
// extensions are rejected.
func NewRegistry(langs ...*Language) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]*Language),
		byExt:  make(map[string]string),
	}

	for _, lang := range langs {
		if lang == nil || lang.ID == "" {
			return nil, errors.New("language must have an id")
		}
		if lang.Grammar == nil {
			return nil, fmt.Errorf("language %s has no grammar", lang.ID)
		}
		if lang.Kind == KindDefault {
			return nil, fmt.Errorf("language %s has no block kind", lang.ID)
		}
		if len(lang.Patterns) == 0 {
			return nil, fmt.Errorf("language %s has no body patterns", lang.ID)
		}

		names := append([]string{lang.ID}, lang.Aliases...)
		for _, name := range names {
			key := strings.ToLower(name)
			if existing, ok := r.byName[key]; ok {
				return nil, fmt.Errorf("name %q of %s already registered by %s", name, lang.ID, existing.ID)
			}
			r.byName[key] = lang
		}

		for _, ext := range lang.Extensions {
			key := normalizeExt(ext)
			if existing, ok := r.byExt[key]; ok {
				return nil, fmt.Errorf("extension %q of %s already registered by %s", ext, lang.ID, existing)
			}
			r.byExt[key] = lang.ID
		}

		r.languages = append(r.languages, lang)
	}

	sort.Slice(r.languages, func(i, j int) bool {
		return r.languages[i].ID < r.languages[j].ID
	})

	return r, nil
}

// Resolve returns the language registered under id or one of its aliases.
func (r *Registry) Resolve(id string) (*Language, error) {
	lang, ok := r.byName[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedLanguage, id, strings.Join(r.Supported(), ", "))
	}
	return lang, nil
}

// Supported returns the registered language ids in sorted order.
func (r *Registry) Supported() []string {
	ids := make([]string, 0, len(r.languages))
	for _, lang := range r.languages {
		ids = append(ids, lang.ID)
	}
	return ids
}

// Languages returns the registered languages sorted by id.
func (r *Registry) Languages() []*Language {
	out := make([]*Language, len(r.languages))
	copy(out, r.languages)
	return out
}

var defaultRegistry = mustRegistry(
	Python(),
	JavaScript(),
	TypeScript(),
	TSX(),
	Java(),
	Go(),
	Rust(),
	C(),
	CPP(),
	CSharp(),
	PHP(),
	Ruby(),
	Scala(),
	Lua(),
	Kotlin(),
)

// Default returns the process-wide registry of built-in languages.
func Default() *Registry {
	return defaultRegistry
}

// Resolve looks up id in the default registry.
func Resolve(id string) (*Language, error) {
	return defaultRegistry.Resolve(id)
}

func mustRegistry(langs ...*Language) *Registry {
	r, err := NewRegistry(langs...)
	if err != nil {
		panic(fmt.Sprintf("grammar: invalid built-in registry: %v", err))
	}
	return r
}

package skeleton

import (
	"fmt"
	"sort"

	"github.com/mvp-joe/loppers/internal/grammar"
	"github.com/mvp-joe/loppers/internal/syntax"
)

// BodySpan is the located body of one declaration.
type BodySpan struct {
	syntax.Span
	Kind grammar.BlockKind
}

// Declaration is a function-like construct with its body and the nodes that must
// survive around it.
type Declaration struct {
	Decl syntax.Span
	Body BodySpan
	// Preserve is a leading node inside the body that is kept (a docstring).
	Preserve   *syntax.Span
	Decorators []syntax.Span
}

type located struct {
	decl   Declaration
	bodies []BodySpan
	seen   map[uintptr]bool
}

// Locate runs every body pattern of lang against tree and returns one Declaration per
// owning declaration node, in pre-order (start ascending, enclosing before enclosed).
// Declarations whose body is not removable keep their non-deletable kind.
func Locate(tree syntax.Tree, lang *grammar.Language, source []byte) ([]Declaration, error) {
	byDecl := make(map[uintptr]*located)
	var order []*located

	lookup := func(decl syntax.Span) *located {
		if l, ok := byDecl[decl.ID]; ok {
			return l
		}
		l := &located{decl: Declaration{Decl: decl}, seen: make(map[uintptr]bool)}
		byDecl[decl.ID] = l
		order = append(order, l)
		return l
	}

	for _, pattern := range lang.Patterns {
		matches, err := tree.Matches(pattern.Query)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s pattern: %w", ErrInvariantViolation, lang.ID, pattern.Role, err)
		}
		kind := lang.KindOf(pattern)

		for _, m := range matches {
			l := lookup(m.Decl)
			switch pattern.Role {
			case grammar.RoleBody:
				l.bodies = append(l.bodies, BodySpan{Span: m.Target, Kind: kind})
			case grammar.RolePreserveLeading:
				if l.decl.Preserve == nil {
					target := m.Target
					l.decl.Preserve = &target
				}
			case grammar.RoleDecorator:
				if !l.seen[m.Target.ID] {
					l.seen[m.Target.ID] = true
					l.decl.Decorators = append(l.decl.Decorators, m.Target)
				}
			}
		}
	}

	decls := make([]Declaration, 0, len(order))
	for _, l := range order {
		if len(l.bodies) == 0 {
			continue
		}
		body, err := chooseBody(l.bodies, lang, source)
		if err != nil {
			return nil, err
		}
		l.decl.Body = body
		sort.Slice(l.decl.Decorators, func(i, j int) bool {
			return l.decl.Decorators[i].Start < l.decl.Decorators[j].Start
		})
		decls = append(decls, l.decl)
	}

	sort.SliceStable(decls, func(i, j int) bool {
		if decls[i].Decl.Start != decls[j].Decl.Start {
			return decls[i].Decl.Start < decls[j].Decl.Start
		}
		return decls[i].Decl.End > decls[j].Decl.End
	})

	return decls, nil
}

// chooseBody picks the first removable candidate, falling back to the first one.
func chooseBody(candidates []BodySpan, lang *grammar.Language, source []byte) (BodySpan, error) {
	body := candidates[0]
	for _, c := range candidates {
		if c.Kind.Deletable() {
			body = c
			break
		}
	}

	if body.Start > body.End || body.End > uint(len(source)) {
		return BodySpan{}, fmt.Errorf("%w: %s body [%d,%d) outside source of %d bytes",
			ErrInvariantViolation, lang.ID, body.Start, body.End, len(source))
	}

	switch body.Kind {
	case grammar.KindBraced:
		if !body.Delimited() {
			return BodySpan{}, fmt.Errorf("%w: %s braced body at byte %d has no delimiter tokens",
				ErrInvariantViolation, lang.ID, body.Start)
		}
	case grammar.KindIndented, grammar.KindEndKeyword:
		// A body sharing its header's line has no lines of its own to remove.
		if !startsLine(source, contentStart(source, body.Span)) {
			body.Kind = grammar.KindNone
		}
	}

	return body, nil
}

// contentStart returns the offset of the first non-whitespace byte in s, or s.End.
func contentStart(source []byte, s syntax.Span) uint {
	pos := s.Start
	for pos < s.End && isSpace(source[pos]) {
		pos++
	}
	return pos
}

// startsLine reports whether only spaces or tabs precede pos on its line.
func startsLine(source []byte, pos uint) bool {
	for i := int(pos) - 1; i >= 0; i-- {
		switch source[i] {
		case ' ', '\t':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

package syntax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/loppers/internal/grammar"
)

// Test Plan for TreeSitter:
// - Matches return target and declaration spans with correct byte ranges
// - Braced nodes report their interior between the delimiter tokens
// - Nodes without delimiter tokens report the full range as interior
// - Queries that do not compile fail with ErrInvalidQuery
// - Queries without a @decl capture fail with ErrInvalidQuery
// - Sources with syntax errors fail with a *ParseError wrapping ErrParseFailure
// - Quantified captures produce one match per captured node
// - Every built-in pattern compiles against its grammar

func mustLang(t *testing.T, id string) *grammar.Language {
	t.Helper()
	lang, err := grammar.Resolve(id)
	require.NoError(t, err)
	return lang
}

func TestTreeSitter_MatchesBracedBody(t *testing.T) {
	t.Parallel()

	src := []byte("package main\n\nfunc add(a, b int) int {\n\treturn a + b\n}\n")
	tree, err := NewTreeSitter().Parse(src, mustLang(t, "go"))
	require.NoError(t, err)
	defer tree.Close()

	matches, err := tree.Matches(`(function_declaration body: (block) @body) @decl`)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, "func add(a, b int) int {\n\treturn a + b\n}", string(src[m.Decl.Start:m.Decl.End]))
	assert.Equal(t, "{\n\treturn a + b\n}", string(src[m.Target.Start:m.Target.End]))
	assert.Equal(t, "\n\treturn a + b\n", string(src[m.Target.InnerStart:m.Target.InnerEnd]))
	assert.True(t, m.Target.Delimited())
	assert.NotEqual(t, m.Decl.ID, m.Target.ID)
}

func TestTreeSitter_MatchesIndentedBody(t *testing.T) {
	t.Parallel()

	src := []byte("def f(x):\n    return x\n")
	tree, err := NewTreeSitter().Parse(src, mustLang(t, "python"))
	require.NoError(t, err)
	defer tree.Close()

	matches, err := tree.Matches(`(function_definition body: (block) @body) @decl`)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	body := matches[0].Target
	assert.Equal(t, "return x", string(src[body.Start:body.End]))
	assert.False(t, body.Delimited())
	assert.Equal(t, body.Start, body.InnerStart)
	assert.Equal(t, body.End, body.InnerEnd)
}

func TestTreeSitter_NestedMatchesInDocumentOrder(t *testing.T) {
	t.Parallel()

	src := []byte("package main\n\nfunc outer() {\n\tf := func() {\n\t\tprintln(1)\n\t}\n\tf()\n}\n")
	tree, err := NewTreeSitter().Parse(src, mustLang(t, "go"))
	require.NoError(t, err)
	defer tree.Close()

	matches, err := tree.Matches(`[(function_declaration body: (block) @body) (func_literal body: (block) @body)] @decl`)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	outer, inner := matches[0], matches[1]
	assert.Less(t, outer.Decl.Start, inner.Decl.Start)
	assert.LessOrEqual(t, outer.Target.Start, inner.Target.Start)
	assert.GreaterOrEqual(t, outer.Target.End, inner.Target.End)
}

func TestTreeSitter_QuantifiedCaptures(t *testing.T) {
	t.Parallel()

	src := []byte("class A {\n  @a\n  @b\n  m() {}\n}\n")
	tree, err := NewTreeSitter().Parse(src, mustLang(t, "typescript"))
	require.NoError(t, err)
	defer tree.Close()

	matches, err := tree.Matches(`(class_body ((decorator) @decorator)+ . (method_definition) @decl)`)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, m := range matches {
		assert.Equal(t, "m() {}", string(src[m.Decl.Start:m.Decl.End]))
		seen[string(src[m.Target.Start:m.Target.End])] = true
	}
	assert.Equal(t, map[string]bool{"@a": true, "@b": true}, seen)
}

func TestTreeSitter_InvalidQuery(t *testing.T) {
	t.Parallel()

	tree, err := NewTreeSitter().Parse([]byte("package main\n"), mustLang(t, "go"))
	require.NoError(t, err)
	defer tree.Close()

	_, err = tree.Matches(`(no_such_node_kind) @decl`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = tree.Matches(`(function_declaration body: (block) @body)`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestTreeSitter_ParseError(t *testing.T) {
	t.Parallel()

	src := []byte("def ok():\n    pass\n\ndef broken(:\n    pass\n")
	_, err := NewTreeSitter().Parse(src, mustLang(t, "python"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParseFailure)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "python", perr.Language)
	assert.Equal(t, uint(4), perr.Line)
	assert.Contains(t, err.Error(), "line 4")
}

func TestTreeSitter_BuiltinPatternsCompile(t *testing.T) {
	t.Parallel()

	for _, lang := range grammar.Default().Languages() {
		t.Run(lang.ID, func(t *testing.T) {
			t.Parallel()

			tree, err := NewTreeSitter().Parse([]byte(""), lang)
			require.NoError(t, err)
			defer tree.Close()

			for _, p := range lang.Patterns {
				_, err := tree.Matches(p.Query)
				assert.NoError(t, err, "pattern %s for %s", p.Role, lang.ID)
			}
		})
	}
}

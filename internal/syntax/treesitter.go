package syntax

import (
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/loppers/internal/grammar"
)

var (
	// ErrParseFailure indicates the source could not be parsed into an error-free tree.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidQuery indicates a body pattern that does not compile against its grammar.
	ErrInvalidQuery = errors.New("invalid query")
)

// ParseError reports where the first syntax error in a source file was found.
type ParseError struct {
	Language string
	// Line and Column are 1-based.
	Line   uint
	Column uint
	Kind   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s source has a syntax error (%s) at line %d, column %d",
		ErrParseFailure, e.Language, e.Kind, e.Line, e.Column)
}

func (e *ParseError) Unwrap() error {
	return ErrParseFailure
}

// TreeSitter parses with the tree-sitter runtime. The zero value is ready to use and
// safe for concurrent use: every Parse call creates and releases its own parser.
type TreeSitter struct{}

// NewTreeSitter creates a tree-sitter backed Parser.
func NewTreeSitter() *TreeSitter {
	return &TreeSitter{}
}

// Parse parses source with the language's grammar. Trees containing ERROR or
// MISSING nodes are rejected with a *ParseError.
func (TreeSitter) Parse(source []byte, lang *grammar.Language) (Tree, error) {
	language := sitter.NewLanguage(lang.Grammar())

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("%w: %s grammar rejected: %v", ErrParseFailure, lang.ID, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s parser produced no tree", ErrParseFailure, lang.ID)
	}

	root := tree.RootNode()
	if root.HasError() {
		node := firstError(root)
		pos := node.StartPosition()
		perr := &ParseError{
			Language: lang.ID,
			Line:     pos.Row + 1,
			Column:   pos.Column + 1,
			Kind:     node.Kind(),
		}
		if node.IsMissing() {
			perr.Kind = "missing " + node.Kind()
		}
		tree.Close()
		return nil, perr
	}

	return &sitterTree{
		tree:     tree,
		language: language,
		source:   source,
	}, nil
}

type sitterTree struct {
	tree     *sitter.Tree
	language *sitter.Language
	source   []byte
}

func (t *sitterTree) Matches(query string) ([]Match, error) {
	q, qErr := sitter.NewQuery(t.language, query)
	if qErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, qErr)
	}
	defer q.Close()

	declIndex := -1
	for i, name := range q.CaptureNames() {
		if name == grammar.DeclCapture {
			declIndex = i
		}
	}
	if declIndex < 0 {
		return nil, fmt.Errorf("%w: no @%s capture in %q", ErrInvalidQuery, grammar.DeclCapture, query)
	}

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var out []Match
	matches := cursor.Matches(q, t.tree.RootNode(), t.source)
	for m := matches.Next(); m != nil; m = matches.Next() {
		var decl Span
		var hasDecl bool
		var targets []Span
		for _, capture := range m.Captures {
			node := capture.Node
			if int(capture.Index) == declIndex {
				decl = spanOf(&node)
				hasDecl = true
			} else {
				targets = append(targets, spanOf(&node))
			}
		}
		if !hasDecl {
			continue
		}
		// Quantified captures yield one Match per captured node.
		for _, target := range targets {
			out = append(out, Match{Decl: decl, Target: target})
		}
	}

	return out, nil
}

func (t *sitterTree) Close() {
	t.tree.Close()
}

// spanOf records a node's range. Anonymous first and last children are treated as
// the opening and closing delimiters.
func spanOf(node *sitter.Node) Span {
	span := Span{
		ID:    node.Id(),
		Start: node.StartByte(),
		End:   node.EndByte(),
	}
	span.InnerStart, span.InnerEnd = span.Start, span.End

	count := node.ChildCount()
	if count < 2 {
		return span
	}
	if first := node.Child(0); first != nil && !first.IsNamed() {
		span.InnerStart = first.EndByte()
	}
	if last := node.Child(count - 1); last != nil && !last.IsNamed() {
		span.InnerEnd = last.StartByte()
	}
	return span
}

// firstError returns the first ERROR or MISSING node in document order.
func firstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.IsError() || child.IsMissing() || child.HasError() {
			return firstError(child)
		}
	}
	return node
}

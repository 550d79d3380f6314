// Package syntax is the boundary between the skeleton engine and a concrete parser.
//
// The engine only consumes the byte-range records defined here. The tree-sitter
// implementation lives in treesitter.go; tests can substitute their own Parser.
package syntax

import "github.com/mvp-joe/loppers/internal/grammar"

// Span is the byte range of one syntax node.
type Span struct {
	// ID identifies the node within its tree.
	ID    uintptr
	Start uint
	End   uint
	// InnerStart and InnerEnd bound the node's interior between its opening and
	// closing delimiter tokens. They equal Start and End when the node has none.
	InnerStart uint
	InnerEnd   uint
}

// Delimited reports whether the node has both an opening and a closing delimiter token.
func (s Span) Delimited() bool {
	return s.InnerStart > s.Start && s.InnerEnd < s.End
}

// Match is one query result: the captured role target and its owning declaration.
type Match struct {
	Target Span
	Decl   Span
}

// Tree is a parsed source file.
type Tree interface {
	// Matches runs a query and returns every match in document order.
	Matches(query string) ([]Match, error)
	// Close releases parser resources held by the tree.
	Close()
}

// Parser turns source text into a Tree for a language.
type Parser interface {
	Parse(source []byte, lang *grammar.Language) (Tree, error)
}

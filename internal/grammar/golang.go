package grammar

import (
	golang "github.com/tree-sitter/tree-sitter-go/bindings/go"
)

// Go removes function, method and function literal bodies.
func Go() *Language {
	return &Language{
		ID:         "go",
		Aliases:    []string{"golang"},
		Extensions: []string{".go"},
		Grammar:    golang.Language,
		Kind:       KindBraced,
		Patterns: []BodyPattern{
			{
				Role: RoleBody,
				Query: `[
  (function_declaration body: (block) @body)
  (method_declaration body: (block) @body)
  (func_literal body: (block) @body)
] @decl`,
			},
		},
	}
}

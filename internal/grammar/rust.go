package grammar

import (
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

// Rust removes fn bodies and block closures. Trait method declarations without a
// body and expression closures stay as written.
func Rust() *Language {
	return &Language{
		ID:         "rust",
		Aliases:    []string{"rs"},
		Extensions: []string{".rs"},
		Grammar:    rust.Language,
		Kind:       KindBraced,
		Patterns: []BodyPattern{
			{
				Role: RoleBody,
				Query: `[
  (function_item body: (block) @body)
  (closure_expression body: (block) @body)
] @decl`,
			},
			{
				Role:  RoleBody,
				Kind:  KindExpression,
				Query: `(closure_expression body: (_) @body) @decl`,
			},
		},
	}
}

package grammar

import (
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
)

// Ruby method bodies run up to the closing `end`, which stays in the skeleton.
// Endless and one-line methods have no separate body lines and are left as written.
func Ruby() *Language {
	return &Language{
		ID:         "ruby",
		Aliases:    []string{"rb"},
		Extensions: []string{".rb", ".rbx", ".rake"},
		Grammar:    ruby.Language,
		Kind:       KindEndKeyword,
		Patterns: []BodyPattern{
			{
				Role: RoleBody,
				Query: `[
  (method body: (body_statement) @body)
  (singleton_method body: (body_statement) @body)
] @decl`,
			},
		},
	}
}

package grammar

import (
	scala "github.com/tree-sitter/tree-sitter-scala/bindings/go"
)

// Scala removes braced def bodies and Scala 3 indented bodies. Single-expression
// definitions (`def f = x`) are left as written.
func Scala() *Language {
	return &Language{
		ID:         "scala",
		Aliases:    []string{"sc"},
		Extensions: []string{".scala", ".sc"},
		Grammar:    scala.Language,
		Kind:       KindBraced,
		Patterns: []BodyPattern{
			{
				Role:  RoleBody,
				Query: `(function_definition body: (block) @body) @decl`,
			},
			{
				Role:  RoleBody,
				Kind:  KindIndented,
				Query: `(function_definition body: (indented_block) @body) @decl`,
			},
			{
				Role:  RoleBody,
				Kind:  KindExpression,
				Query: `(function_definition body: (_) @body) @decl`,
			},
		},
	}
}

package grammar

import (
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Python bodies are indentation-delimited blocks. A leading docstring and any
// decorators stay in the skeleton; lambdas are single expressions and never removed.
func Python() *Language {
	return &Language{
		ID:         "python",
		Aliases:    []string{"py"},
		Extensions: []string{".py", ".pyi", ".pyw"},
		Grammar:    python.Language,
		Kind:       KindIndented,
		Patterns: []BodyPattern{
			{
				Role:  RoleBody,
				Query: `(function_definition body: (block) @body) @decl`,
			},
			{
				Role:  RoleBody,
				Kind:  KindExpression,
				Query: `(lambda body: (_) @body) @decl`,
			},
			{
				Role:  RolePreserveLeading,
				Query: `(function_definition body: (block . (expression_statement (string)) @docstring)) @decl`,
			},
			{
				Role:  RoleDecorator,
				Query: `(decorated_definition (decorator) @decorator definition: (function_definition) @decl)`,
			},
		},
	}
}

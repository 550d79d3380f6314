package grammar

import (
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// Java removes method, constructor and block-lambda bodies.
func Java() *Language {
	return &Language{
		ID:         "java",
		Extensions: []string{".java"},
		Grammar:    java.Language,
		Kind:       KindBraced,
		Patterns: []BodyPattern{
			{
				Role: RoleBody,
				Query: `[
  (method_declaration body: (block) @body)
  (constructor_declaration (constructor_body) @body)
  (lambda_expression body: (block) @body)
] @decl`,
			},
			{
				Role:  RoleBody,
				Kind:  KindExpression,
				Query: `(lambda_expression body: (_) @body) @decl`,
			},
			{
				Role: RoleDecorator,
				Query: `[
  (method_declaration (modifiers [(marker_annotation) (annotation)] @decorator))
  (constructor_declaration (modifiers [(marker_annotation) (annotation)] @decorator))
] @decl`,
			},
		},
	}
}

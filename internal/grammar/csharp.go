package grammar

import (
	csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
)

// CSharp removes method, constructor, accessor, local function, lambda and
// anonymous method blocks. Property accessor lists are scaffolding: each accessor
// body is removed, the `get`/`set` declarations stay. Expression-bodied members
// (`=> expr;`) are left untouched.
func CSharp() *Language {
	return &Language{
		ID:         "csharp",
		Aliases:    []string{"cs", "c#"},
		Extensions: []string{".cs"},
		Grammar:    csharp.Language,
		Kind:       KindBraced,
		Patterns: []BodyPattern{
			{
				Role: RoleBody,
				Query: `[
  (method_declaration body: (block) @body)
  (accessor_declaration body: (block) @body)
  (constructor_declaration (block) @body)
  (local_function_statement (block) @body)
  (lambda_expression (block) @body)
  (anonymous_method_expression (block) @body)
] @decl`,
			},
			{
				Role:  RoleBody,
				Kind:  KindExpression,
				Query: `(method_declaration (arrow_expression_clause) @body) @decl`,
			},
			{
				Role: RoleDecorator,
				Query: `[
  (method_declaration (attribute_list) @decorator)
  (constructor_declaration (attribute_list) @decorator)
] @decl`,
			},
		},
	}
}

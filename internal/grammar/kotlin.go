package grammar

import (
	kotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
)

// Kotlin removes braced function and property accessor bodies. The property
// declaration is scaffolding, so a custom get/set keeps its header and loses only
// its block. Expression bodies (`= expr`) are left as written.
func Kotlin() *Language {
	return &Language{
		ID:         "kotlin",
		Aliases:    []string{"kt"},
		Extensions: []string{".kt", ".kts"},
		Grammar:    kotlin.Language,
		Kind:       KindBraced,
		Patterns: []BodyPattern{
			{
				Role: RoleBody,
				Query: `[
  (function_declaration (function_body "{") @body)
  (getter (function_body "{") @body)
  (setter (function_body "{") @body)
] @decl`,
			},
			{
				Role: RoleBody,
				Kind: KindExpression,
				Query: `[
  (function_declaration (function_body "=") @body)
  (getter (function_body "=") @body)
  (setter (function_body "=") @body)
] @decl`,
			},
		},
	}
}

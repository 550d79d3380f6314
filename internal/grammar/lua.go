package grammar

import (
	lua "github.com/tree-sitter-grammars/tree-sitter-lua/bindings/go"
)

// Lua function bodies run up to the closing `end`. Named, local and anonymous
// functions are all removed; one-line functions stay as written.
func Lua() *Language {
	return &Language{
		ID:         "lua",
		Extensions: []string{".lua"},
		Grammar:    lua.Language,
		Kind:       KindEndKeyword,
		Patterns: []BodyPattern{
			{
				Role: RoleBody,
				Query: `[
  (function_declaration body: (block) @body)
  (function_definition body: (block) @body)
] @decl`,
			},
		},
	}
}

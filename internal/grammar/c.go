package grammar

import (
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
)

// C removes function definition bodies. Headers (.h) are parsed as C.
func C() *Language {
	return &Language{
		ID:         "c",
		Extensions: []string{".c", ".h"},
		Grammar:    c.Language,
		Kind:       KindBraced,
		Patterns: []BodyPattern{
			{
				Role:  RoleBody,
				Query: `(function_definition body: (compound_statement) @body) @decl`,
			},
		},
	}
}

// CPP adds lambda bodies to the C function forms.
func CPP() *Language {
	return &Language{
		ID:         "cpp",
		Aliases:    []string{"c++", "cxx"},
		Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"},
		Grammar:    cpp.Language,
		Kind:       KindBraced,
		Patterns: []BodyPattern{
			{
				Role: RoleBody,
				Query: `[
  (function_definition body: (compound_statement) @body)
  (lambda_expression body: (compound_statement) @body)
] @decl`,
			},
		},
	}
}

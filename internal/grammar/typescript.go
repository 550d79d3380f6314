package grammar

import (
	"unsafe"

	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// ecmaPatterns covers the function forms shared by JavaScript, TypeScript and TSX.
// Arrow functions with an expression body are reported but never removed. Method
// decorators are siblings of the method in the class body.
var ecmaPatterns = []BodyPattern{
	{
		Role: RoleBody,
		Query: `[
  (function_declaration body: (statement_block) @body)
  (generator_function_declaration body: (statement_block) @body)
  (function_expression body: (statement_block) @body)
  (generator_function body: (statement_block) @body)
  (method_definition body: (statement_block) @body)
  (arrow_function body: (statement_block) @body)
] @decl`,
	},
	{
		Role:  RoleBody,
		Kind:  KindExpression,
		Query: `(arrow_function body: (_) @body) @decl`,
	},
	{
		Role:  RoleDecorator,
		Query: `(class_body ((decorator) @decorator)+ . (method_definition) @decl)`,
	},
}

// JavaScript is parsed with the TSX dialect so JSX files work without a separate grammar.
func JavaScript() *Language {
	return ecma("javascript", []string{"js", "jsx"}, []string{".js", ".jsx", ".mjs", ".cjs"}, typescript.LanguageTSX)
}

// TypeScript uses the plain TypeScript dialect.
func TypeScript() *Language {
	return ecma("typescript", []string{"ts"}, []string{".ts", ".mts", ".cts"}, typescript.LanguageTypescript)
}

// TSX uses the TSX dialect.
func TSX() *Language {
	return ecma("tsx", nil, []string{".tsx"}, typescript.LanguageTSX)
}

func ecma(id string, aliases, exts []string, grammar func() unsafe.Pointer) *Language {
	return &Language{
		ID:         id,
		Aliases:    aliases,
		Extensions: exts,
		Grammar:    grammar,
		Kind:       KindBraced,
		Patterns:   ecmaPatterns,
	}
}

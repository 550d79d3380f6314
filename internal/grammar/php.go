package grammar

import (
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

// PHP removes method and function bodies. Files are parsed with the PHP dialect,
// which accepts the leading `<?php` tag and inline HTML.
func PHP() *Language {
	return &Language{
		ID:         "php",
		Extensions: []string{".php", ".phtml"},
		Grammar:    php.LanguagePHP,
		Kind:       KindBraced,
		Patterns: []BodyPattern{
			{
				Role: RoleBody,
				Query: `[
  (method_declaration body: (compound_statement) @body)
  (function_definition body: (compound_statement) @body)
] @decl`,
			},
		},
	}
}

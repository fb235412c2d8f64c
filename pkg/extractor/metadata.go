// Metadata extraction via AST traversal.
package extractor

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// modifierKinds maps modifier node kinds to the recorded modifier.
var modifierKinds = map[string]string{
	"static_modifier":   "static",
	"abstract_modifier": "abstract",
	"final_modifier":    "final",
	"readonly_modifier": "readonly",
}

// extractMetadata reads visibility, modifiers, parameter names and return
// type from a method or function declaration.
//
// Done by walking children rather than with queries because modifiers are
// unnamed-field siblings of the name.
func (e *Extractor) extractMetadata(symbol *Symbol, node *ts.Node, sourceCode []byte) {
	modifiers := []string{}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}

		kind := child.Kind()
		if kind == "visibility_modifier" {
			symbol.Scope = child.Utf8Text(sourceCode)
			continue
		}
		if m, ok := modifierKinds[kind]; ok {
			modifiers = append(modifiers, m)
		}
	}

	// Methods without a visibility keyword are public.
	if symbol.Kind == SymbolKindMethod && symbol.Scope == "" {
		symbol.Scope = "public"
	}
	if len(modifiers) > 0 {
		symbol.Modifiers = modifiers
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		symbol.Parameters = parameterNames(params, sourceCode)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		symbol.ReturnType = ret.Utf8Text(sourceCode)
	}
}

// parameterNames returns "$name" for every parameter in a formal_parameters node.
func parameterNames(params *ts.Node, sourceCode []byte) []string {
	var names []string
	for i := uint(0); i < params.NamedChildCount(); i++ {
		param := params.NamedChild(i)
		if param == nil {
			continue
		}
		if name := param.ChildByFieldName("name"); name != nil {
			names = append(names, name.Utf8Text(sourceCode))
		}
	}
	return names
}

// Symbol extraction implementation.
package extractor

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/routejump/pkg/parser/queries"
)

// namespaceScope is one namespace declaration and the bytes it covers.
type namespaceScope struct {
	name string
	// braced declarations cover [start, end); statement declarations cover
	// everything after start until the next namespace.
	braced     bool
	start, end uint
}

// collectNamespaces returns the namespace declarations in source order.
func collectNamespaces(matches []queries.QueryMatch) []namespaceScope {
	var out []namespaceScope
	for _, match := range matches {
		name := findCapture(match.Captures, "name")
		def := findCapture(match.Captures, "definition")
		if name == nil || def == nil || name.Category != "namespace" {
			continue
		}
		out = append(out, namespaceScope{
			name:   name.Text,
			braced: def.Node.ChildByFieldName("body") != nil,
			start:  def.Node.StartByte(),
			end:    def.Node.EndByte(),
		})
	}
	return out
}

// namespaceAt returns the namespace in effect at byte offset pos.
func namespaceAt(namespaces []namespaceScope, pos uint) string {
	current := ""
	for _, ns := range namespaces {
		if ns.braced {
			if pos >= ns.start && pos < ns.end {
				return ns.name
			}
			continue
		}
		if ns.start <= pos {
			current = ns.name
		}
	}
	return current
}

// extractSymbols processes symbol query matches into Symbol structs.
func (e *Extractor) extractSymbols(matches []queries.QueryMatch, namespaces []namespaceScope, sourceCode []byte, filePath string) []Symbol {
	symbols := make([]Symbol, 0, len(matches))

	for _, match := range matches {
		symbol := e.buildSymbol(match, namespaces, sourceCode, filePath)
		if symbol != nil {
			symbols = append(symbols, *symbol)
		}
	}

	return symbols
}

// buildSymbol creates a Symbol from query captures.
//
// Steps:
// 1. Extract name from @{kind}.name capture
// 2. Infer kind from capture prefix
// 3. Resolve the namespace in effect at the declaration
// 4. For methods, find the enclosing type
// 5. Extract metadata (via metadata.go)
func (e *Extractor) buildSymbol(match queries.QueryMatch, namespaces []namespaceScope, sourceCode []byte, filePath string) *Symbol {
	nameCapture := findCapture(match.Captures, "name")
	if nameCapture == nil || nameCapture.Category == "namespace" {
		return nil
	}

	kind, ok := inferSymbolKind(nameCapture.Category)
	if !ok {
		return nil
	}

	declaration := nameCapture.Node
	if def := findCapture(match.Captures, "definition"); def != nil {
		declaration = def.Node
	}

	name := nameCapture.Text
	ns := namespaceAt(namespaces, declaration.StartByte())

	symbol := &Symbol{
		Name:         name,
		Kind:         kind,
		Namespace:    ns,
		Location:     extractLocation(declaration, filePath),
		NameLocation: extractLocation(nameCapture.Node, filePath),
	}

	if kind == SymbolKindMethod {
		owner := ownerTypeName(declaration, sourceCode)
		if owner == "" {
			// Methods of anonymous classes cannot be named by an action.
			return nil
		}
		symbol.Owner = owner
		symbol.OwnerFQN = qualify(ns, owner)
		symbol.FullyQualifiedName = symbol.OwnerFQN + "::" + name
	} else {
		symbol.FullyQualifiedName = qualify(ns, name)
	}

	if kind == SymbolKindMethod || kind == SymbolKindFunction {
		e.extractMetadata(symbol, declaration, sourceCode)
	}

	return symbol
}

// findCapture returns the first capture with the given field.
func findCapture(captures []queries.QueryCapture, field string) *queries.QueryCapture {
	for i := range captures {
		if captures[i].Field == field {
			return &captures[i]
		}
	}
	return nil
}

// inferSymbolKind maps a capture category to a SymbolKind.
func inferSymbolKind(category string) (SymbolKind, bool) {
	switch category {
	case "class":
		return SymbolKindClass, true
	case "interface":
		return SymbolKindInterface, true
	case "trait":
		return SymbolKindTrait, true
	case "enum":
		return SymbolKindEnum, true
	case "method":
		return SymbolKindMethod, true
	case "function":
		return SymbolKindFunction, true
	default:
		return "", false
	}
}

// typeDeclarations are the node kinds that can own a method.
var typeDeclarations = map[string]bool{
	"class_declaration":     true,
	"interface_declaration": true,
	"trait_declaration":     true,
	"enum_declaration":      true,
}

// ownerTypeName walks up from a method declaration to its enclosing named
// type. Returns "" for anonymous classes.
func ownerTypeName(node *ts.Node, sourceCode []byte) string {
	for current := node.Parent(); current != nil; current = current.Parent() {
		kind := current.Kind()
		if typeDeclarations[kind] {
			if nameNode := current.ChildByFieldName("name"); nameNode != nil {
				return nameNode.Utf8Text(sourceCode)
			}
			return ""
		}
		if kind == "anonymous_class" || kind == "object_creation_expression" {
			return ""
		}
	}
	return ""
}

// qualify joins a namespace and a name with the PHP separator.
func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + `\` + name
}

// extractLocation converts tree-sitter node position to a Location.
//
// Tree-sitter positions are 0-based; lines and columns are reported 1-based.
func extractLocation(node *ts.Node, filePath string) Location {
	startPos := node.StartPosition()
	endPos := node.EndPosition()

	return Location{
		FilePath:    filePath,
		StartLine:   uint32(startPos.Row + 1),
		StartColumn: uint32(startPos.Column + 1),
		EndLine:     uint32(endPos.Row + 1),
		EndColumn:   uint32(endPos.Column + 1),
		StartByte:   uint32(node.StartByte()),
		EndByte:     uint32(node.EndByte()),
	}
}

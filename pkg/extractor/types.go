// Package extractor provides per-file extraction of PHP declarations.
//
// Each file is parsed once and every declaration is read from the same tree.
package extractor

import (
	"strings"

	"github.com/gnana997/routejump/pkg/parser"
)

// PerFileResult contains all extracted information from a single file.
type PerFileResult struct {
	FilePath string
	Language parser.Language

	// Namespaces lists every namespace declared in the file, in source order.
	Namespaces []string

	Symbols []Symbol
}

// Symbol represents a PHP declaration (type, method or function) with metadata.
type Symbol struct {
	Name string `json:"name"`
	// FullyQualifiedName is Namespace\Type for types, Namespace\Type::method
	// for methods and Namespace\function for functions.
	FullyQualifiedName string     `json:"fqn"`
	Kind               SymbolKind `json:"kind"`
	Namespace          string     `json:"namespace,omitempty"`

	// Owner is the declaring type's name for methods.
	Owner string `json:"owner,omitempty"`
	// OwnerFQN is the declaring type's fully qualified name for methods.
	OwnerFQN string `json:"owner_fqn,omitempty"`

	// Location spans the whole declaration.
	Location Location `json:"location"`
	// NameLocation spans the declared name only.
	NameLocation Location `json:"name_location"`

	Scope      string   `json:"scope,omitempty"` // "public", "protected", "private"
	Modifiers  []string `json:"modifiers,omitempty"`
	Parameters []string `json:"parameters,omitempty"`
	ReturnType string   `json:"return_type,omitempty"`
}

// SymbolKind identifies the type of symbol.
type SymbolKind string

const (
	SymbolKindClass     SymbolKind = "class"
	SymbolKindInterface SymbolKind = "interface"
	SymbolKindTrait     SymbolKind = "trait"
	SymbolKindEnum      SymbolKind = "enum"
	SymbolKindMethod    SymbolKind = "method"
	SymbolKindFunction  SymbolKind = "function"
)

// IsType reports whether the kind declares a type that can own methods.
func (k SymbolKind) IsType() bool {
	switch k {
	case SymbolKindClass, SymbolKindInterface, SymbolKindTrait, SymbolKindEnum:
		return true
	}
	return false
}

// Location represents a position in source code.
//
// Uses 1-based line/column numbers for editor compatibility and 0-based byte
// offsets from tree-sitter for slicing: sourceCode[StartByte:EndByte].
type Location struct {
	FilePath    string `json:"file_path"`
	StartLine   uint32 `json:"start_line"`
	StartColumn uint32 `json:"start_column"`
	EndLine     uint32 `json:"end_line"`
	EndColumn   uint32 `json:"end_column"`
	StartByte   uint32 `json:"start_byte"`
	EndByte     uint32 `json:"end_byte"`
}

// Types returns the declared types in source order.
func (r *PerFileResult) Types() []Symbol {
	var out []Symbol
	for _, s := range r.Symbols {
		if s.Kind.IsType() {
			out = append(out, s)
		}
	}
	return out
}

// FindType returns the type whose fully qualified name is fqn. PHP type names
// are case-insensitive. A leading separator on fqn is ignored.
func (r *PerFileResult) FindType(fqn string) *Symbol {
	fqn = strings.TrimPrefix(fqn, `\`)
	return r.firstType(func(s Symbol) bool {
		return strings.EqualFold(s.FullyQualifiedName, fqn)
	})
}

// FindTypeByName returns the first type declared with the short name.
func (r *PerFileResult) FindTypeByName(name string) *Symbol {
	return r.firstType(func(s Symbol) bool {
		return strings.EqualFold(s.Name, name)
	})
}

func (r *PerFileResult) firstType(match func(Symbol) bool) *Symbol {
	for _, s := range r.Types() {
		if match(s) {
			return &s
		}
	}
	return nil
}

// FindMethod returns the method member declared directly on the type ownerFQN.
// Inherited and trait-imported methods are not followed.
func (r *PerFileResult) FindMethod(ownerFQN, member string) *Symbol {
	ownerFQN = strings.TrimPrefix(ownerFQN, `\`)
	for i := range r.Symbols {
		s := &r.Symbols[i]
		if s.Kind == SymbolKindMethod &&
			strings.EqualFold(s.OwnerFQN, ownerFQN) &&
			strings.EqualFold(s.Name, member) {
			return s
		}
	}
	return nil
}

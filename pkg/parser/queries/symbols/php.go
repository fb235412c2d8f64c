// Package symbols holds tree-sitter query sources for symbol extraction.
package symbols

// PHPQueries contains tree-sitter query patterns for PHP symbol extraction.
//
// Each pattern captures:
//   - @<kind>.name - The symbol name
//   - @<kind>.definition - The entire declaration node (for location)
//
// Methods are matched without their enclosing type; the extractor walks up
// the tree to find the owner.
const PHPQueries = `
; ============================================================================
; Namespaces
; ============================================================================

; namespace App\Http\Controllers;
; namespace App\Http\Controllers { ... }
(namespace_definition
  name: (namespace_name) @namespace.name
) @namespace.definition

; ============================================================================
; Types
; ============================================================================

(class_declaration
  name: (name) @class.name
) @class.definition

(interface_declaration
  name: (name) @interface.name
) @interface.definition

(trait_declaration
  name: (name) @trait.name
) @trait.definition

(enum_declaration
  name: (name) @enum.name
) @enum.definition

; ============================================================================
; Functions
; ============================================================================

; public function show($id) { ... }
(method_declaration
  name: (name) @method.name
) @method.definition

; function helper() { ... }
(function_definition
  name: (name) @function.name
) @function.definition
`

// Package queries compiles the PHP declaration query and turns its matches
// into plain capture values.
package queries

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/routejump/pkg/parser"
	"github.com/gnana997/routejump/pkg/parser/queries/symbols"
)

// QueryManager compiles the PHP symbol query once and runs it over parse
// trees. Compiled queries are freed by Close.
//
// Usage:
//
//	qm := NewQueryManager(logger)
//	defer qm.Close()
//
//	query, err := qm.SymbolQuery()
//	if err != nil {
//	    return err
//	}
//	matches, err := qm.ExecuteQuery(tree, query, sourceCode)
type QueryManager struct {
	mutex  sync.Mutex
	symbol *ts.Query
	closed bool
	logger *slog.Logger
}

// NewQueryManager creates a query manager. A nil logger falls back to
// slog.Default().
func NewQueryManager(logger *slog.Logger) *QueryManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryManager{logger: logger}
}

// SymbolQuery returns the compiled declaration query (namespaces, types,
// methods, functions). It is compiled on first use and shared read-only
// afterwards, so it is safe to execute from several goroutines.
func (qm *QueryManager) SymbolQuery() (*ts.Query, error) {
	qm.mutex.Lock()
	defer qm.mutex.Unlock()

	if qm.closed {
		return nil, fmt.Errorf("query manager closed")
	}
	if qm.symbol != nil {
		return qm.symbol, nil
	}

	query, qerr := ts.NewQuery(parser.Grammar(false), symbols.PHPQueries)
	if qerr != nil {
		return nil, fmt.Errorf("compile PHP symbol query: %s", qerr.Message)
	}
	qm.symbol = query

	qm.logger.Debug("compiled symbol query", "language", parser.LanguagePHP.String())
	return query, nil
}

// ExecuteQuery runs a compiled query on a parse tree and returns structured matches.
//
// Parameters:
//   - tree: The parse tree to query
//   - query: The compiled query (from SymbolQuery)
//   - source: The original source code (for extracting matched text)
//
// Returns:
//   - []QueryMatch: Structured query results with captures
//   - error: If query execution fails
//
func (qm *QueryManager) ExecuteQuery(tree *ts.Tree, query *ts.Query, source []byte) ([]QueryMatch, error) {
	if tree == nil {
		return nil, fmt.Errorf("tree is nil")
	}
	if query == nil {
		return nil, fmt.Errorf("query is nil")
	}

	// Create query cursor
	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	// Execute query - returns iterator
	iter := cursor.Matches(query, tree.RootNode(), source)

	// Get capture names from query
	captureNames := query.CaptureNames()

	// Collect matches
	var matches []QueryMatch
	for {
		match := iter.Next()
		if match == nil {
			break
		}

		// Process captures for this match
		var captures []QueryCapture
		for _, capture := range match.Captures {
			// Get capture name from index
			var captureName string
			if int(capture.Index) < len(captureNames) {
				captureName = captureNames[capture.Index]
			}

			// Parse capture name (e.g., "function.name" → category="function", field="name")
			category, field := parseCaptureName(captureName)

			// Extract node text
			text := capture.Node.Utf8Text(source)

			// Build capture result
			captures = append(captures, QueryCapture{
				Name:     captureName,
				Category: category,
				Field:    field,
				Node:     &capture.Node,
				Text:     text,
				Location: nodeLocation(&capture.Node),
			})
		}

		matches = append(matches, QueryMatch{
			PatternIndex: uint32(match.PatternIndex),
			Captures:     captures,
		})
	}

	return matches, nil
}

// Close frees the compiled query. The manager cannot be used afterwards.
func (qm *QueryManager) Close() error {
	qm.mutex.Lock()
	defer qm.mutex.Unlock()

	if qm.symbol != nil {
		qm.symbol.Close()
		qm.symbol = nil
	}
	qm.closed = true
	return nil
}

// QueryMatch represents a single pattern match from query execution.
type QueryMatch struct {
	// PatternIndex identifies which query pattern matched
	PatternIndex uint32

	// Captures contains all captured nodes for this match
	Captures []QueryCapture
}

// QueryCapture represents a single captured node from a query match.
type QueryCapture struct {
	// Name is the full capture name (e.g., "method.name", "class.definition")
	Name string

	// Category is the first part of the capture name (e.g., "method", "class")
	Category string

	// Field is the second part of the capture name (e.g., "name", "definition")
	// Empty string if capture name has no dot
	Field string

	// Node is the captured AST node
	Node *ts.Node

	// Text is the source code text of the captured node
	Text string

	// Location is the file location of the captured node
	Location Location
}

// Location represents a position in source code.
type Location struct {
	StartLine   uint32 // 1-based line number
	StartColumn uint32 // 1-based column number
	EndLine     uint32
	EndColumn   uint32
	StartByte   uint32 // 0-based byte offset
	EndByte     uint32
}

// parseCaptureName splits a capture name like "function.name" into ("function", "name").
//
// If the name has no dot, returns (name, "").
// Examples:
//   - "method.name" → ("method", "name")
//   - "class.definition" → ("class", "definition")
func parseCaptureName(name string) (category, field string) {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return name, ""
}

// nodeLocation extracts location information from a tree-sitter node.
//
// Converts tree-sitter's 0-based coordinates to 1-based line/column numbers
// for consistency with LSP and most editor APIs.
func nodeLocation(node *ts.Node) Location {
	start := node.StartPosition()
	end := node.EndPosition()

	return Location{
		StartLine:   uint32(start.Row + 1),    // Convert 0-based to 1-based
		StartColumn: uint32(start.Column + 1), // Convert 0-based to 1-based
		EndLine:     uint32(end.Row + 1),
		EndColumn:   uint32(end.Column + 1),
		StartByte:   uint32(node.StartByte()),
		EndByte:     uint32(node.EndByte()),
	}
}

package extractor

import (
	"fmt"
	"log/slog"

	"github.com/gnana997/routejump/pkg/parser"
	"github.com/gnana997/routejump/pkg/parser/queries"
)

// Extractor extracts PHP declarations from source files.
//
// Usage:
//
//	extractor := NewExtractor(parserManager, queryManager, logger)
//	result, err := extractor.ExtractFile(filePath, sourceCode)
//	if err != nil {
//	    return err
//	}
//	method := result.FindMethod(`App\Http\Controllers\UserController`, "show")
type Extractor struct {
	parserManager *parser.ParserManager
	queryManager  *queries.QueryManager
	logger        *slog.Logger
}

// NewExtractor creates a new extractor.
func NewExtractor(pm *parser.ParserManager, qm *queries.QueryManager, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Extractor{
		parserManager: pm,
		queryManager:  qm,
		logger:        logger,
	}
}

// ExtractFile parses a file once and extracts every declaration from the tree.
//
// Safe for concurrent use: parsers come from the manager's pool and the
// compiled query is shared read-only.
func (e *Extractor) ExtractFile(filePath string, sourceCode []byte) (*PerFileResult, error) {
	lang := parser.DetectLanguage(filePath)
	if lang == parser.LanguageUnknown {
		return nil, fmt.Errorf("unsupported language for file: %s", filePath)
	}

	tree, err := e.parserManager.ParseFile(sourceCode, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filePath, err)
	}
	defer tree.Close()

	symbolQuery, err := e.queryManager.SymbolQuery()
	if err != nil {
		return nil, fmt.Errorf("failed to get symbol query: %w", err)
	}

	matches, err := e.queryManager.ExecuteQuery(tree, symbolQuery, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to execute symbol query: %w", err)
	}

	namespaces := collectNamespaces(matches)
	symbols := e.extractSymbols(matches, namespaces, sourceCode, filePath)

	e.logger.Debug("extracted file",
		"file", filePath,
		"language", lang,
		"namespaces", len(namespaces),
		"symbols", len(symbols))

	names := make([]string, len(namespaces))
	for i, ns := range namespaces {
		names[i] = ns.name
	}

	return &PerFileResult{
		FilePath:   filePath,
		Language:   lang,
		Namespaces: names,
		Symbols:    symbols,
	}, nil
}

package parser

import (
	"fmt"
	"log/slog"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

// Grammar returns the PHP grammar. phpOnly selects the variant that starts in
// PHP mode, for sources without an opening tag. Both variants share node
// types, so a query compiled against one runs on trees from the other.
func Grammar(phpOnly bool) *ts.Language {
	if phpOnly {
		return ts.NewLanguage(tree_sitter_php.LanguagePHPOnly())
	}
	return ts.NewLanguage(tree_sitter_php.LanguagePHP())
}

// ParserManager hands out pooled tree-sitter parsers for the two PHP grammar
// variants. Pools are created on first use.
//
// The manager must be closed via Close. Callers own the returned trees and
// must close them.
//
// Example:
//
//	manager := NewParserManager(logger)
//	defer manager.Close()
//
//	tree, err := manager.ParseFile(source, "app/Http/Controllers/UserController.php")
//	if err != nil {
//	    return err
//	}
//	defer tree.Close()
type ParserManager struct {
	// pools is keyed by grammar variant (phpOnly).
	pools map[bool]*parserPool
	mutex sync.RWMutex

	logger *slog.Logger
}

// NewParserManager creates a ParserManager. A nil logger falls back to
// slog.Default().
func NewParserManager(logger *slog.Logger) *ParserManager {
	if logger == nil {
		logger = slog.Default()
	}

	return &ParserManager{
		pools:  make(map[bool]*parserPool),
		logger: logger,
	}
}

// Parse parses source with the PHP grammar. The default variant treats text
// outside "<?php ... ?>" as inline HTML; phpOnly parses everything as PHP.
//
// Trees with syntax errors are still returned. Safe for concurrent use.
func (pm *ParserManager) Parse(source []byte, lang Language, phpOnly bool) (*ts.Tree, error) {
	if lang != LanguagePHP {
		return nil, fmt.Errorf("cannot parse %s source", lang)
	}

	pool, err := pm.pool(phpOnly)
	if err != nil {
		return nil, err
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser returned no tree")
	}

	if tree.RootNode().HasError() {
		pm.logger.Debug("parse tree contains errors", "phpOnly", phpOnly)
	}

	return tree, nil
}

// ParseFile parses a PHP file, picking the grammar variant from the presence
// of an opening tag.
func (pm *ParserManager) ParseFile(source []byte, filePath string) (*ts.Tree, error) {
	if DetectLanguage(filePath) == LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}

	return pm.Parse(source, LanguagePHP, !HasOpenTag(source))
}

// Close releases every pooled parser. The manager cannot be used afterwards.
func (pm *ParserManager) Close() error {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	for phpOnly, pool := range pm.pools {
		pm.logger.Debug("closing parser pool",
			"phpOnly", phpOnly,
			"parsers_created", pool.createdCount())
		pool.close()
	}
	pm.pools = make(map[bool]*parserPool)

	return nil
}

// pool returns the pool for a grammar variant, creating it on first use.
func (pm *ParserManager) pool(phpOnly bool) (*parserPool, error) {
	pm.mutex.RLock()
	pool, ok := pm.pools[phpOnly]
	pm.mutex.RUnlock()
	if ok {
		return pool, nil
	}

	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	if pool, ok = pm.pools[phpOnly]; ok {
		return pool, nil
	}

	size := getDefaultPoolSize()
	pool = newParserPool(Grammar(phpOnly), phpOnly, size, pm.logger)
	pm.pools[phpOnly] = pool

	pm.logger.Debug("created parser pool", "phpOnly", phpOnly, "maxSize", size)
	return pool, nil
}

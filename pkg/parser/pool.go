package parser

import (
	"fmt"
	"log/slog"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// parserPool holds up to maxSize parsers for one grammar variant. Parsers
// are created lazily; once maxSize exist, acquire blocks until one is
// released.
type parserPool struct {
	pool    chan *ts.Parser
	grammar *ts.Language
	phpOnly bool
	maxSize int

	// mutex guards created
	mutex   sync.Mutex
	created int

	logger *slog.Logger
}

func newParserPool(grammar *ts.Language, phpOnly bool, maxSize int, logger *slog.Logger) *parserPool {
	return &parserPool{
		pool:    make(chan *ts.Parser, maxSize),
		grammar: grammar,
		phpOnly: phpOnly,
		maxSize: maxSize,
		logger:  logger,
	}
}

// acquire returns an idle parser, a new one while under maxSize, or blocks
// for a released one.
func (p *parserPool) acquire() (*ts.Parser, error) {
	select {
	case parser := <-p.pool:
		return parser, nil
	default:
	}

	p.mutex.Lock()
	if p.created >= p.maxSize {
		p.mutex.Unlock()
		return <-p.pool, nil
	}

	parser := ts.NewParser()
	if parser == nil {
		p.mutex.Unlock()
		return nil, fmt.Errorf("create parser")
	}
	if err := parser.SetLanguage(p.grammar); err != nil {
		parser.Close()
		p.mutex.Unlock()
		return nil, fmt.Errorf("set PHP grammar: %w", err)
	}
	p.created++
	created := p.created
	p.mutex.Unlock()

	p.logger.Debug("created parser", "phpOnly", p.phpOnly, "pool_size", created)
	return parser, nil
}

// release returns parser to the pool.
func (p *parserPool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}

	select {
	case p.pool <- parser:
	default:
		// More releases than acquires; never expected.
		parser.Close()
		p.logger.Warn("parser pool full, closing excess parser", "phpOnly", p.phpOnly)
	}
}

// close drains the pool and frees its parsers.
func (p *parserPool) close() {
	close(p.pool)
	for parser := range p.pool {
		parser.Close()
	}
}

func (p *parserPool) createdCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.created
}

package jump

import (
	"log/slog"
	"time"

	"github.com/gnana997/routejump/pkg/artisan"
	"github.com/gnana997/routejump/pkg/extractor"
	"github.com/gnana997/routejump/pkg/locator"
	"github.com/gnana997/routejump/pkg/parser"
	"github.com/gnana997/routejump/pkg/parser/queries"
)

// Options configures NewProjectService.
type Options struct {
	// Timeout bounds the route listing command. Zero means no limit.
	Timeout time.Duration

	Include     []string
	Exclude     []string
	Concurrency int

	Logger *slog.Logger
}

// NewProjectService wires the real lister, parser and locator for the
// project root in cfg. The returned close function releases the parser pools.
func NewProjectService(cfg ConfigProvider, opts Options) (*Service, func(), error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pm := parser.NewParserManager(logger)
	qm := queries.NewQueryManager(logger)
	closeFn := func() {
		qm.Close()
		pm.Close()
	}

	loc, err := locator.New(locator.Config{
		Root:        cfg.Current().Root,
		Include:     opts.Include,
		Exclude:     opts.Exclude,
		Concurrency: opts.Concurrency,
	}, extractor.NewExtractor(pm, qm, logger), logger)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	lister := artisan.NewLister(opts.Timeout, logger)
	return NewService(lister, loc, cfg, logger), closeFn, nil
}

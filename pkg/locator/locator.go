// Package locator resolves a controller action to a source position.
package locator

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gnana997/routejump/pkg/extractor"
	"github.com/gnana997/routejump/pkg/route"
	"github.com/gnana997/routejump/pkg/util"
)

// Config controls where the locator searches.
type Config struct {
	// Root is the project root.
	Root string

	// Include optionally narrows the search (e.g. "app/**"). Empty means
	// every file named after the type.
	Include []string

	// Exclude skips matching paths. Nil means DefaultExcludes().
	Exclude []string

	// Concurrency caps parallel extraction. 0 uses util.GetOptimalPoolSize().
	Concurrency int
}

// Location is where an action's method is declared.
type Location struct {
	Action string `json:"action"`
	// File is the absolute path of the controller file.
	File string `json:"file"`
	// RelPath is File relative to the project root, slash separated.
	RelPath string `json:"rel_path"`
	// Line and Column point at the method name, 1-based.
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`

	// TypeFQN is the declared type the method was found on.
	TypeFQN string `json:"type"`
	// NamespaceMatched is false when no candidate declared the action's
	// namespace and the first file by path order was used.
	NamespaceMatched bool `json:"namespace_matched"`
	// Candidates lists every file named after the type, relative to the root.
	Candidates []string `json:"candidates"`

	Method extractor.Symbol `json:"method"`
}

// Locator finds controller methods in a project tree.
type Locator struct {
	root        string
	include     []string
	exclude     []string
	concurrency int
	extractor   *extractor.Extractor
	logger      *slog.Logger
}

// New creates a locator. Patterns are validated up front.
func New(cfg Config, ext *extractor.Extractor, logger *slog.Logger) (*Locator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if ext == nil {
		return nil, fmt.Errorf("extractor is required")
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root %q: %w", cfg.Root, err)
	}

	exclude := cfg.Exclude
	if exclude == nil {
		exclude = DefaultExcludes()
	}
	if err := validatePatterns("include", cfg.Include); err != nil {
		return nil, err
	}
	if err := validatePatterns("exclude", exclude); err != nil {
		return nil, err
	}

	return &Locator{
		root:        root,
		include:     cfg.Include,
		exclude:     exclude,
		concurrency: util.GetOptimalPoolSizeWithOverride(cfg.Concurrency),
		extractor:   ext,
		logger:      logger,
	}, nil
}

// Root returns the absolute project root.
func (l *Locator) Root() string {
	return l.root
}

// Locate finds the file declaring ref.Type and the position of ref.Member in it.
//
// Candidates are every <Type>.php under the root. The first whose declared
// fully qualified name equals the action's wins; without one, the first
// candidate in path order is used.
func (l *Locator) Locate(ctx context.Context, ref route.ActionRef) (*Location, error) {
	files, err := l.discover(ctx, ref.Type)
	if err != nil {
		return nil, fmt.Errorf("search for %s.php: %w", ref.Type, err)
	}
	if len(files) == 0 {
		return nil, &FileNotFoundError{Type: ref.Type}
	}

	results, err := l.extractAll(ctx, files)
	if err != nil {
		return nil, err
	}

	chosen, typeSym, matched := chooseCandidate(results, ref)

	loc := &Location{
		Action:           ref.Action,
		File:             files[chosen],
		RelPath:          l.rel(files[chosen]),
		NamespaceMatched: matched,
		Candidates:       make([]string, len(files)),
	}
	for i, f := range files {
		loc.Candidates[i] = l.rel(f)
	}

	result := results[chosen]
	var method *extractor.Symbol
	if result != nil {
		if typeSym != nil {
			loc.TypeFQN = typeSym.FullyQualifiedName
			method = result.FindMethod(typeSym.FullyQualifiedName, ref.Member)
		}
		if method == nil {
			method = findAnyMethod(result, ref.Member)
		}
	}
	if method == nil {
		return nil, &MethodNotFoundError{Type: ref.Type, Member: ref.Member, File: loc.File}
	}

	loc.Method = *method
	loc.Line = method.NameLocation.StartLine
	loc.Column = method.NameLocation.StartColumn
	if loc.TypeFQN == "" {
		loc.TypeFQN = method.OwnerFQN
	}

	l.logger.Debug("located action",
		"action", ref.Action,
		"file", loc.RelPath,
		"line", loc.Line,
		"candidates", len(files),
		"namespace_matched", matched)

	return loc, nil
}

// extractAll reads and extracts candidates in parallel. Results keep the
// order of files; a file that cannot be read or parsed yields nil.
func (l *Locator) extractAll(ctx context.Context, files []string) ([]*extractor.PerFileResult, error) {
	reader := util.NewSourceReader(l.logger)
	defer reader.Close()

	results := make([]*extractor.PerFileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mf, err := reader.Open(path)
			if err != nil {
				l.logger.Warn("skipping unreadable candidate", "file", path, "error", err)
				return nil
			}
			result, err := l.extractor.ExtractFile(path, mf.Bytes())
			if err != nil {
				l.logger.Warn("skipping unparsable candidate", "file", path, "error", err)
				return nil
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// chooseCandidate picks the result whose type matches the action's fully
// qualified name, falling back to the first candidate. It returns the index,
// the type symbol in that file (nil if none is named after the type) and
// whether the namespace matched.
func chooseCandidate(results []*extractor.PerFileResult, ref route.ActionRef) (int, *extractor.Symbol, bool) {
	fqn := ref.FQN()
	for i, r := range results {
		if r == nil {
			continue
		}
		if sym := r.FindType(fqn); sym != nil {
			return i, sym, true
		}
	}

	for i, r := range results {
		if r == nil {
			continue
		}
		return i, r.FindTypeByName(ref.Type), false
	}
	return 0, nil, false
}

// findAnyMethod returns the first method named member anywhere in the file.
func findAnyMethod(result *extractor.PerFileResult, member string) *extractor.Symbol {
	for i := range result.Symbols {
		s := &result.Symbols[i]
		if s.Kind == extractor.SymbolKindMethod && strings.EqualFold(s.Name, member) {
			return s
		}
	}
	return nil
}

func (l *Locator) rel(path string) string {
	rel, err := filepath.Rel(l.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

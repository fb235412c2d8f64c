package locator

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directories never searched for controllers.
func DefaultExcludes() []string {
	return []string{
		"vendor/**",
		"node_modules/**",
		"storage/**",
		"bootstrap/cache/**",
		".git/**",
		".routejump/**",
	}
}

// validatePatterns checks glob syntax.
func validatePatterns(kind string, patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid %s pattern: %s", kind, pattern)
		}
	}
	return nil
}

// discover walks the project root and returns absolute paths of files named
// <typeName>.php that pass the include and exclude patterns, in walk order.
// The file name is compared case-insensitively, like PHP type names; the
// type name is never treated as a glob.
func (l *Locator) discover(ctx context.Context, typeName string) ([]string, error) {
	fileName := typeName + ".php"

	var files []string
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			l.logger.Warn("walk error", "path", path, "error", err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		relPath, relErr := filepath.Rel(l.root, path)
		if relErr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		for _, pattern := range l.exclude {
			if matched, _ := doublestar.Match(pattern, relPath); matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		if !strings.EqualFold(d.Name(), fileName) {
			return nil
		}
		if len(l.include) > 0 {
			included := false
			for _, pattern := range l.include {
				if m, _ := doublestar.Match(pattern, relPath); m {
					included = true
					break
				}
			}
			if !included {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

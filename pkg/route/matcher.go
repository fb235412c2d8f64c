package route

import (
	"log/slog"
	"strings"
)

// Matcher resolves candidate URLs against a route table. It holds no state
// besides its logger; every call is independent.
type Matcher struct {
	logger *slog.Logger
}

// NewMatcher creates a Matcher. A nil logger falls back to slog.Default().
func NewMatcher(logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{logger: logger}
}

// FindMatches is a convenience wrapper around a default Matcher.
func FindMatches(routes []Route, url string) []RouteMatch {
	return NewMatcher(nil).FindMatches(routes, url)
}

// MatchJSON parses a route listing and matches url against it. A malformed
// listing yields no matches.
func MatchJSON(data []byte, url string) []RouteMatch {
	return NewMatcher(nil).MatchJSON(data, url)
}

// candidate is the user input prepared once per call.
type candidate struct {
	raw  string
	path string // path only, normalized
	host string // host and path, scheme and port stripped, normalized
}

func newCandidate(url string) candidate {
	return candidate{
		raw:  url,
		path: NormalizePath(ExtractPath(url)),
		host: hostQualified(url),
	}
}

// FindMatches evaluates every route in order and returns those matching url.
// Order is preserved; there is no ranking.
func (m *Matcher) FindMatches(routes []Route, url string) []RouteMatch {
	c := newCandidate(url)

	var matches []RouteMatch
	for _, r := range routes {
		kind, params, ok := m.matchRoute(r, c)
		if !ok {
			continue
		}
		matches = append(matches, RouteMatch{
			Route:   r,
			Action:  r.Action,
			Methods: NormalizeMethods(r.Methods),
			Kind:    kind,
			Params:  params,
		})
	}

	m.logger.Debug("route match complete",
		"url", url,
		"path", c.path,
		"routes", len(routes),
		"matches", len(matches))

	return matches
}

// MatchJSON parses data with ParseRoutes and matches url against the result.
func (m *Matcher) MatchJSON(data []byte, url string) []RouteMatch {
	routes, err := ParseRoutes(data)
	if err != nil {
		m.logger.Warn("ignoring malformed route listing", "error", err)
		return nil
	}
	return m.FindMatches(routes, url)
}

// matchRoute tries the strategies in order and stops at the first success.
func (m *Matcher) matchRoute(r Route, c candidate) (MatchKind, map[string]string, bool) {
	routePath := TemplatePath(r.URI)

	if routePath == c.path {
		return MatchExact, nil, true
	}

	if strings.Contains(routePath, "{") {
		if params, ok := m.tryPattern(r, routePath, false, c.path); ok {
			return MatchPath, params, true
		}
	}

	if domain := strings.TrimSpace(r.Domain); domain != "" {
		template := NormalizePath(strings.TrimSuffix(domain, "/") + "/" + strings.TrimPrefix(unescapeSlashes(r.URI), "/"))
		if params, ok := m.tryPattern(r, template, true, c.host); ok {
			return MatchDomain, params, true
		}
	}

	if params, ok := m.tryPattern(r, NormalizePath(r.URI), true, c.host); ok {
		return MatchURI, params, true
	}

	return "", nil, false
}

// tryPattern compiles template and matches it against subject. A template
// that does not compile counts as a miss for this route only.
func (m *Matcher) tryPattern(r Route, template string, hostAware bool, subject string) (map[string]string, bool) {
	p, err := CompilePattern(template, hostAware)
	if err != nil {
		m.logger.Debug("skipping route template", "uri", r.URI, "action", r.Action, "error", err)
		return nil, false
	}
	return p.Match(subject)
}

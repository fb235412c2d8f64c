// Package jump ties route listing, matching and source location together.
package jump

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gnana997/routejump/pkg/artisan"
	"github.com/gnana997/routejump/pkg/config"
	"github.com/gnana997/routejump/pkg/locator"
	"github.com/gnana997/routejump/pkg/route"
)

// RouteLister produces the raw route listing for a project.
type RouteLister interface {
	List(ctx context.Context, req artisan.Request) ([]byte, error)
}

// ActionLocator finds the source position of a controller action.
type ActionLocator interface {
	Locate(ctx context.Context, ref route.ActionRef) (*locator.Location, error)
}

// ConfigProvider supplies the current project configuration.
type ConfigProvider interface {
	Current() *config.Config
}

// StaticConfig is a ConfigProvider that never changes.
type StaticConfig struct {
	Config *config.Config
}

// Current returns the wrapped configuration.
func (s StaticConfig) Current() *config.Config {
	return s.Config
}

// MethodChooser picks one of several HTTP methods when a URL is ambiguous.
type MethodChooser interface {
	Choose(ctx context.Context, url string, targets []route.Target) (string, error)
}

// MethodChooserFunc adapts a function to MethodChooser.
type MethodChooserFunc func(ctx context.Context, url string, targets []route.Target) (string, error)

// Choose calls f.
func (f MethodChooserFunc) Choose(ctx context.Context, url string, targets []route.Target) (string, error) {
	return f(ctx, url, targets)
}

// FixedMethod chooses the given method, or fails with MethodRequiredError when
// it is empty.
func FixedMethod(method string) MethodChooser {
	return MethodChooserFunc(func(_ context.Context, url string, targets []route.Target) (string, error) {
		if strings.TrimSpace(method) == "" {
			methods := make([]string, len(targets))
			for i, t := range targets {
				methods[i] = t.Method
			}
			return "", &MethodRequiredError{URL: url, Methods: methods}
		}
		return method, nil
	})
}

// FindResult is the outcome of matching a URL against the route table.
type FindResult struct {
	URL         string            `json:"url"`
	Path        string            `json:"path"`
	CommandLine string            `json:"command"`
	RouteCount  int               `json:"route_count"`
	Resolution  *route.Resolution `json:"resolution"`
	Suggestions []Suggestion      `json:"suggestions,omitempty"`
}

// Target is a resolved jump destination.
type Target struct {
	URL      string            `json:"url"`
	Method   string            `json:"method,omitempty"`
	Ref      route.ActionRef   `json:"ref"`
	Location *locator.Location `json:"location"`
}

// RouteEntry is one row of the route table with normalized methods.
type RouteEntry struct {
	Methods   []string `json:"methods"`
	URI       string   `json:"uri"`
	Domain    string   `json:"domain,omitempty"`
	Name      string   `json:"name,omitempty"`
	Action    string   `json:"action"`
	Navigable bool     `json:"navigable"`
}

// Service runs the jump workflow for one project.
type Service struct {
	lister  RouteLister
	locator ActionLocator
	config  ConfigProvider
	matcher *route.Matcher
	logger  *slog.Logger
}

// NewService creates a workflow service.
func NewService(lister RouteLister, loc ActionLocator, cfg ConfigProvider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		lister:  lister,
		locator: loc,
		config:  cfg,
		matcher: route.NewMatcher(logger),
		logger:  logger,
	}
}

func (s *Service) request() artisan.Request {
	cfg := s.config.Current()
	return artisan.Request{Command: cfg.ArtisanCommand, Dir: cfg.Root}
}

// loadRoutes runs the lister and parses its output. Output that is not a
// route array is logged and treated as an empty table.
func (s *Service) loadRoutes(ctx context.Context) ([]route.Route, artisan.Request, error) {
	req := s.request()
	data, err := s.lister.List(ctx, req)
	if err != nil {
		return nil, req, err
	}

	routes, err := route.ParseRoutes(data)
	if err != nil {
		s.logger.Warn("Route listing is not a JSON route array", "command", req.CommandLine(), "error", err)
		return nil, req, nil
	}

	s.logger.Debug("Loaded routes", "count", len(routes), "command", req.CommandLine())
	return routes, req, nil
}

// Find matches url against the project's routes.
func (s *Service) Find(ctx context.Context, url string) (*FindResult, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("url is required")
	}

	routes, req, err := s.loadRoutes(ctx)
	if err != nil {
		return nil, err
	}

	res := route.Resolve(s.matcher.FindMatches(routes, url))
	result := &FindResult{
		URL:         url,
		Path:        route.ExtractPath(url),
		CommandLine: req.CommandLine(),
		RouteCount:  len(routes),
		Resolution:  res,
	}
	if res.Outcome == route.OutcomeNoRoute {
		result.Suggestions = Suggest(routes, url)
	}
	return result, nil
}

// Jump resolves url to the declaration of its controller method. chooser is
// consulted only when several methods lead to different actions; a nil
// chooser makes that case an error.
func (s *Service) Jump(ctx context.Context, url string, chooser MethodChooser) (*Target, error) {
	found, err := s.Find(ctx, url)
	if err != nil {
		return nil, err
	}
	res := found.Resolution

	var action, method string
	switch res.Outcome {
	case route.OutcomeNoRoute:
		return nil, ErrNoRouteFound
	case route.OutcomeNotNavigable:
		return nil, ErrNotNavigable
	case route.OutcomeSingle:
		action = res.Action()
		if len(res.Targets) == 1 {
			method = res.Targets[0].Method
		}
	case route.OutcomeAmbiguous:
		if chooser == nil {
			chooser = FixedMethod("")
		}
		method, err = chooser.Choose(ctx, found.URL, res.Targets)
		if err != nil {
			return nil, err
		}
		action, err = res.Choose(method)
		if err != nil {
			return nil, err
		}
		method = strings.ToUpper(strings.TrimSpace(method))
	}

	ref, err := route.ParseAction(action)
	if err != nil {
		return nil, err
	}

	loc, err := s.locator.Locate(ctx, ref)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Resolved jump target", "url", found.URL, "action", action, "file", loc.RelPath, "line", loc.Line)
	return &Target{URL: found.URL, Method: method, Ref: ref, Location: loc}, nil
}

// Routes returns the route table. A non-empty filter keeps rows whose uri,
// name or action contains it (case-insensitive).
func (s *Service) Routes(ctx context.Context, filter string) ([]RouteEntry, error) {
	routes, _, err := s.loadRoutes(ctx)
	if err != nil {
		return nil, err
	}

	filter = strings.ToLower(strings.TrimSpace(filter))
	entries := make([]RouteEntry, 0, len(routes))
	for _, r := range routes {
		if filter != "" && !containsFold(filter, r.URI, r.Name, r.Action) {
			continue
		}
		entries = append(entries, RouteEntry{
			Methods:   r.Methods.Normalized(),
			URI:       r.URI,
			Domain:    r.Domain,
			Name:      r.Name,
			Action:    r.Action,
			Navigable: route.IsNavigable(r.Action),
		})
	}
	return entries, nil
}

func containsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// IsConfigurationError reports whether err should be answered by pointing the
// user at the command configuration.
func IsConfigurationError(err error) bool {
	var notFound *artisan.ToolNotFoundError
	var failed *artisan.CommandFailedError
	return errors.Is(err, artisan.ErrCommandNotConfigured) ||
		errors.As(err, &notFound) ||
		errors.As(err, &failed)
}

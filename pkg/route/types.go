// Package route parses the output of `route:list --json` and matches URLs
// against the declared route templates.
package route

import (
	"bytes"
	"encoding/json"
)

// Route is one entry of the route listing.
type Route struct {
	URI     string  `json:"uri"`
	Action  string  `json:"action"`
	Domain  string  `json:"domain,omitempty"`
	Name    string  `json:"name,omitempty"`
	Methods Methods `json:"method"`
}

// Methods holds the raw HTTP verb tokens of a route. The listing emits them
// either as a single string ("GET|HEAD"), a list, or null.
type Methods []string

// UnmarshalJSON accepts a string, a list of strings (null elements are
// dropped) or null.
func (m *Methods) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*m = nil
		return nil
	}

	if trimmed[0] == '[' {
		var list []*string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		out := make(Methods, 0, len(list))
		for _, s := range list {
			if s != nil {
				out = append(out, *s)
			}
		}
		*m = out
		return nil
	}

	var single string
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return err
	}
	*m = Methods{single}
	return nil
}

// Normalized returns the de-duplicated verb list used for navigation.
func (m Methods) Normalized() []string {
	return NormalizeMethods(m)
}

// MatchKind records which strategy matched a route.
type MatchKind string

const (
	// MatchExact is a literal comparison of normalized paths.
	MatchExact MatchKind = "exact"
	// MatchPath is a parameterized template matched against the path.
	MatchPath MatchKind = "path"
	// MatchDomain is the route's domain joined with its uri, matched against host and path.
	MatchDomain MatchKind = "domain"
	// MatchURI is the raw uri (which may carry a host placeholder) matched against host and path.
	MatchURI MatchKind = "uri"
)

// RouteMatch is the result of matching one Route against a candidate URL.
type RouteMatch struct {
	Route   Route             `json:"route"`
	Action  string            `json:"action"`
	Methods []string          `json:"methods"`
	Kind    MatchKind         `json:"kind"`
	Params  map[string]string `json:"params,omitempty"`
}

// Navigable reports whether the match names a concrete controller method.
func (m RouteMatch) Navigable() bool {
	return IsNavigable(m.Action)
}

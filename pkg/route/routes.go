package route

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotRouteList is returned when the listing is not a JSON array.
var ErrNotRouteList = errors.New("route listing is not a JSON array")

// rawRoute mirrors a listing record with the required fields as pointers so
// that absent keys can be told apart from empty strings.
type rawRoute struct {
	URI     *string `json:"uri"`
	Action  *string `json:"action"`
	Domain  *string `json:"domain"`
	Name    *string `json:"name"`
	Methods Methods `json:"method"`
}

// ParseRoutes decodes the output of `route:list --json`.
//
// Records without a uri or action are skipped. Lines printed before the JSON
// array (PHP warnings, container runtime chatter) are ignored when the array
// starts on its own line.
func ParseRoutes(data []byte) ([]Route, error) {
	body := bytes.TrimSpace(data)
	if len(body) == 0 {
		return nil, ErrNotRouteList
	}
	if body[0] != '[' {
		i := bytes.Index(body, []byte("\n["))
		if i < 0 {
			return nil, ErrNotRouteList
		}
		body = body[i+1:]
	}

	var raw []rawRoute
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode route listing: %w", err)
	}

	routes := make([]Route, 0, len(raw))
	for _, r := range raw {
		if r.URI == nil || r.Action == nil {
			continue
		}
		rt := Route{
			URI:     *r.URI,
			Action:  *r.Action,
			Methods: r.Methods,
		}
		if r.Domain != nil {
			rt.Domain = *r.Domain
		}
		if r.Name != nil {
			rt.Name = *r.Name
		}
		routes = append(routes, rt)
	}
	return routes, nil
}

package route

import (
	"fmt"
	"strings"
)

// Outcome classifies the result of resolving a set of matches.
type Outcome int

const (
	// OutcomeNoRoute means nothing matched.
	OutcomeNoRoute Outcome = iota
	// OutcomeNotNavigable means routes matched but all are closures.
	OutcomeNotNavigable
	// OutcomeSingle means exactly one controller action is reachable.
	OutcomeSingle
	// OutcomeAmbiguous means different methods lead to different actions.
	OutcomeAmbiguous
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNoRoute:
		return "no_route"
	case OutcomeNotNavigable:
		return "not_navigable"
	case OutcomeSingle:
		return "single"
	case OutcomeAmbiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// MarshalText lets outcomes render as their names in JSON.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Target pairs an HTTP method with the action it reaches.
type Target struct {
	Method string `json:"method"`
	Action string `json:"action"`
}

// Resolution is the aggregated view of a match set.
type Resolution struct {
	Outcome Outcome      `json:"outcome"`
	Matches []RouteMatch `json:"matches"`
	// Targets maps method to action in first-seen order. The first action
	// declared for a method wins; later routes for the same method are ignored.
	Targets []Target `json:"targets"`
}

// IsNavigable reports whether action names a Type@member pair rather than a
// closure.
func IsNavigable(action string) bool {
	return strings.Contains(action, "@")
}

// Resolve aggregates matches into a Resolution.
func Resolve(matches []RouteMatch) *Resolution {
	res := &Resolution{Matches: matches}

	seen := make(map[string]bool)
	for _, m := range matches {
		if !m.Navigable() {
			continue
		}
		for _, method := range m.Methods {
			if seen[method] {
				continue
			}
			seen[method] = true
			res.Targets = append(res.Targets, Target{Method: method, Action: m.Action})
		}
	}

	// Only reachable actions count; a route whose methods were all claimed
	// earlier is shadowed.
	actions := make(map[string]bool)
	for _, t := range res.Targets {
		actions[t.Action] = true
	}

	switch {
	case len(matches) == 0:
		res.Outcome = OutcomeNoRoute
	case len(res.Targets) == 0:
		res.Outcome = OutcomeNotNavigable
	case len(actions) == 1:
		res.Outcome = OutcomeSingle
	default:
		res.Outcome = OutcomeAmbiguous
	}
	return res
}

// Methods returns the methods in Targets order.
func (r *Resolution) Methods() []string {
	methods := make([]string, len(r.Targets))
	for i, t := range r.Targets {
		methods[i] = t.Method
	}
	return methods
}

// Action returns the action of the first target, or "" when there is none.
// For OutcomeSingle it is the only reachable action.
func (r *Resolution) Action() string {
	if len(r.Targets) == 0 {
		return ""
	}
	return r.Targets[0].Action
}

// Choose returns the action reached by method (case-insensitive).
func (r *Resolution) Choose(method string) (string, error) {
	want := strings.ToUpper(strings.TrimSpace(method))
	for _, t := range r.Targets {
		if t.Method == want {
			return t.Action, nil
		}
	}
	return "", fmt.Errorf("method %q not among %s", method, strings.Join(r.Methods(), ", "))
}

package jump

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/gnana997/routejump/pkg/route"
)

const (
	maxSuggestions = 3
	// minSimilarity is the lowest normalized similarity worth suggesting.
	minSimilarity = 0.5
)

// Suggestion is a route whose uri is close to an unmatched URL.
type Suggestion struct {
	URI        string   `json:"uri"`
	Action     string   `json:"action"`
	Methods    []string `json:"methods"`
	Similarity float64  `json:"similarity"`
}

// Suggest returns up to three routes whose normalized uri resembles the
// normalized path of url, most similar first. Ties keep declaration order.
func Suggest(routes []route.Route, url string) []Suggestion {
	query := strings.ToLower(route.NormalizePath(route.ExtractPath(url)))

	seen := make(map[string]bool)
	var out []Suggestion
	for _, r := range routes {
		uri := route.TemplatePath(r.URI)
		if seen[uri] {
			continue
		}
		seen[uri] = true

		score := similarity(query, strings.ToLower(uri))
		if score < minSimilarity {
			continue
		}
		out = append(out, Suggestion{
			URI:        r.URI,
			Action:     r.Action,
			Methods:    r.Methods.Normalized(),
			Similarity: score,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// similarity returns 1 - distance/longest, in [0, 1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}

	score := 1 - float64(levenshtein.Distance(a, b, nil))/float64(maxLen)
	if score < 0 {
		return 0
	}
	return score
}

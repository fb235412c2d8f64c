package route

import "strings"

// NormalizeMethods turns raw verb tokens into the list offered for navigation.
//
// Compound values such as "GET|HEAD" are split, tokens are trimmed and
// upper-cased, empty and "NULL" tokens are dropped and duplicates removed.
// An empty result defaults to GET. HEAD is dropped unless it is the only
// verb left, since it always rides along with GET.
func NormalizeMethods(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	methods := make([]string, 0, len(raw))
	for _, value := range raw {
		for _, token := range strings.Split(value, "|") {
			token = strings.ToUpper(strings.TrimSpace(token))
			if token == "" || token == "NULL" || seen[token] {
				continue
			}
			seen[token] = true
			methods = append(methods, token)
		}
	}

	if len(methods) == 0 {
		return []string{"GET"}
	}
	if len(methods) == 1 {
		return methods
	}

	out := methods[:0]
	for _, m := range methods {
		if m != "HEAD" {
			out = append(out, m)
		}
	}
	return out
}

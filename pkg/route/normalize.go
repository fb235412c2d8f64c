package route

import (
	"net/url"
	"strings"
)

// ExtractPath returns the path portion of a URL or bare path.
//
// Rules, in order:
//   - http:// and https:// inputs are parsed as URLs and their path is
//     returned ("/" when empty). If parsing fails, everything from the first
//     "/" after the scheme is kept.
//   - When the text before the first "/" looks like a host or a route
//     placeholder (contains ".", "{" or "}"), it is dropped.
//   - Query strings and fragments are cut.
//
// ExtractPath never fails.
func ExtractPath(input string) string {
	trimmed := strings.TrimSpace(input)

	if scheme := schemePrefix(trimmed); scheme != "" {
		u, err := url.Parse(trimmed)
		if err == nil {
			if u.Path == "" {
				return "/"
			}
			return u.Path
		}
		rest := trimmed[len(scheme):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return cutQuery(rest[i:])
		}
		return "/"
	}

	if i := strings.IndexByte(trimmed, '/'); i > 0 && strings.ContainsAny(trimmed[:i], ".{}") {
		return cutQuery(trimmed[i:])
	}

	return cutQuery(trimmed)
}

// NormalizePath prepares a path or template for comparison: escaped slashes
// are unescaped and one leading and one trailing "/" are stripped.
func NormalizePath(s string) string {
	s = strings.TrimSpace(s)
	s = unescapeSlashes(s)
	s = strings.TrimPrefix(s, "/")
	s = strings.TrimSuffix(s, "/")
	return s
}

// TemplatePath normalizes a route uri for path matching. A leading host
// segment such as "{account}.localhost" is dropped. Placeholders and "?" are
// kept, so "{locale}/about" and "posts/{id?}" survive intact.
func TemplatePath(uri string) string {
	p := NormalizePath(uri)
	if i := strings.IndexByte(p, '/'); i > 0 && strings.Contains(p[:i], ".") {
		return p[i+1:]
	}
	return p
}

// hostQualified returns the candidate with its scheme, port, query and
// fragment removed but the host kept, normalized for comparison.
func hostQualified(input string) string {
	s := strings.TrimSpace(input)
	if scheme := schemePrefix(s); scheme != "" {
		s = s[len(scheme):]
	}
	s = stripPort(cutQuery(s))
	return NormalizePath(s)
}

func schemePrefix(s string) string {
	switch {
	case strings.HasPrefix(s, "https://"):
		return "https://"
	case strings.HasPrefix(s, "http://"):
		return "http://"
	default:
		return ""
	}
}

func cutQuery(s string) string {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		return s[:i]
	}
	return s
}

// stripPort removes ":port" from the leading host segment.
func stripPort(s string) string {
	host, rest := s, ""
	if i := strings.IndexByte(s, '/'); i >= 0 {
		host, rest = s[:i], s[i:]
	}
	if i := strings.LastIndexByte(host, ':'); i >= 0 && isDigits(host[i+1:]) {
		host = host[:i]
	}
	return host + rest
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func unescapeSlashes(s string) string {
	return strings.ReplaceAll(s, `\/`, "/")
}

package route

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	segmentChars = `[^/]+`
	labelChars   = `[^/.]+`
)

// Pattern is a route template compiled into an anchored regular expression.
type Pattern struct {
	// Template is the normalized template the pattern was built from.
	Template string
	// Params lists the placeholder names in order of appearance.
	Params []string

	re *regexp.Regexp
}

// CompilePattern translates a normalized route template into a Pattern.
//
//   - {name?} becomes an optional group that also swallows the "/" before it,
//     so "posts/{id?}" matches both "posts" and "posts/5".
//   - {name} becomes one or more non-slash characters. With hostAware set,
//     placeholders before the first "/" stop at "." as well, so a subdomain
//     placeholder never spans a domain label.
//   - Everything else is matched literally.
func CompilePattern(template string, hostAware bool) (*Pattern, error) {
	var (
		expr    strings.Builder
		literal strings.Builder
		params  []string
		inHost  = hostAware
	)

	flush := func() {
		expr.WriteString(regexp.QuoteMeta(literal.String()))
		literal.Reset()
	}

	expr.WriteString("^")
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unclosed placeholder at offset %d in %q", i, template)
			}
			name := template[i+1 : i+end]
			optional := strings.HasSuffix(name, "?")
			name = strings.TrimSuffix(name, "?")
			if name == "" || strings.ContainsAny(name, "{/") {
				return nil, fmt.Errorf("invalid placeholder %q in %q", template[i:i+end+1], template)
			}
			params = append(params, name)

			chars := segmentChars
			if inHost {
				chars = labelChars
			}

			if optional {
				lit := literal.String()
				switch {
				case strings.HasSuffix(lit, "/"):
					literal.Reset()
					literal.WriteString(strings.TrimSuffix(lit, "/"))
					flush()
					expr.WriteString("(?:/(" + chars + "))?")
				default:
					flush()
					expr.WriteString("(" + chars + ")?")
				}
			} else {
				flush()
				expr.WriteString("(" + chars + ")")
			}
			i += end
		case '}':
			return nil, fmt.Errorf("unbalanced '}' at offset %d in %q", i, template)
		case '/':
			inHost = false
			literal.WriteByte(c)
		default:
			literal.WriteByte(c)
		}
	}
	flush()
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", template, err)
	}
	return &Pattern{Template: template, Params: params, re: re}, nil
}

// Match reports whether candidate matches the whole pattern and returns the
// captured placeholder values. Optional placeholders that were not supplied
// are omitted from the map.
func (p *Pattern) Match(candidate string) (map[string]string, bool) {
	m := p.re.FindStringSubmatch(candidate)
	if m == nil {
		return nil, false
	}
	var params map[string]string
	for i, name := range p.Params {
		if i+1 >= len(m) || m[i+1] == "" {
			continue
		}
		if params == nil {
			params = make(map[string]string, len(p.Params))
		}
		params[name] = m[i+1]
	}
	return params, true
}

// String returns the regular expression source.
func (p *Pattern) String() string {
	return p.re.String()
}

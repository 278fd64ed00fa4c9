package router

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// pattern is a plugin path with placeholders such as "/rooms/{id}",
// "/posts/{year:\d{4}}" or "/files/{*}". A plain placeholder matches one
// path segment and "{*}" matches the rest of the path.
type pattern struct {
	path   string
	regex  *regexp.Regexp
	params []string
}

func isPattern(path string) bool {
	return strings.ContainsRune(path, '{')
}

func compilePattern(path string) (*pattern, error) {
	if path == "" {
		return nil, errors.New("empty plugin pattern")
	}

	var b strings.Builder
	b.WriteByte('^')

	var params []string
	last := 0
	for _, span := range placeholders(path) {
		b.WriteString(regexp.QuoteMeta(path[last:span[0]]))

		name, expr, custom := strings.Cut(path[span[0]+1:span[1]-1], ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.Errorf("unnamed placeholder in %q", path)
		}
		for _, param := range params {
			if param == name {
				return nil, errors.Errorf("placeholder %q repeats in %q", name, path)
			}
		}
		params = append(params, name)

		switch {
		case custom:
		case name == "*":
			expr = ".*"
		default:
			expr = "[^/]+"
		}
		b.WriteString("(" + expr + ")")
		last = span[1]
	}
	b.WriteString(regexp.QuoteMeta(path[last:]))
	b.WriteByte('$')

	regex, err := regexp.Compile(b.String())
	if err != nil {
		return nil, errors.Wrapf(err, "compile plugin pattern %q", path)
	}
	if regex.NumSubexp() != len(params) {
		return nil, errors.Errorf("placeholder expressions in %q must not capture", path)
	}
	return &pattern{path: path, regex: regex, params: params}, nil
}

// placeholders returns the [start, end) ranges of balanced {...} groups.
func placeholders(s string) [][2]int {
	var spans [][2]int
	depth, start := 0, -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				spans = append(spans, [2]int{start, i + 1})
			}
		}
	}
	return spans
}

// match returns the placeholder values when path matches.
func (p *pattern) match(path string) (map[string]string, bool) {
	matches := p.regex.FindStringSubmatch(path)
	if matches == nil {
		return nil, false
	}

	params := make(map[string]string, len(p.params))
	for i, name := range p.params {
		params[name] = matches[i+1]
	}
	return params, true
}

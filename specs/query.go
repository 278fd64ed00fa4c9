package specs

import (
	"maps"
	"net/url"
	"slices"
	"strings"
)

// Query holds the decoded arguments of a request query. The first value of
// a repeated key wins.
type Query map[string]string

// ParseQuery decodes a raw query. Pairs without "=", with an empty key or
// with an invalid escape are skipped.
func ParseQuery(query string) Query {
	q := Query{}
	for pair := range strings.SplitSeq(query, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}

		key, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		if _, has := q[key]; has {
			continue
		}
		if value, err = url.QueryUnescape(value); err != nil {
			continue
		}
		q[key] = value
	}
	return q
}

func (q Query) Get(key string) string {
	return q[key]
}

// String encodes the query with sorted keys.
func (q Query) String() string {
	var b strings.Builder
	for _, key := range slices.Sorted(maps.Keys(q)) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q[key]))
	}
	return b.String()
}

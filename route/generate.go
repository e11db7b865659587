package route

import (
	"fmt"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// Generate builds a concrete URL from the template, the inverse of Match.
// Every declared parameter must be present in values; constrained
// parameters must satisfy their pattern.
func (r *Route) Generate(values map[string]string) (string, error) {
	uri := bytebufferpool.Get()
	defer bytebufferpool.Put(uri)

	for i, seg := range r.segments {
		if i > 0 {
			uri.WriteByte('/')
		}

		if seg.param == "" {
			uri.WriteString(seg.literal)
			continue
		}

		value, ok := values[seg.param]
		if !ok {
			return "", fmt.Errorf("missing value for parameter '%s' in route '%s'", seg.param, r.path)
		}

		if seg.catchAll {
			uri.WriteString(strings.TrimPrefix(value, "/"))
			continue
		}

		if seg.re != nil && !seg.re.MatchString(value) {
			return "", fmt.Errorf("value '%s' does not satisfy parameter {%s} in route '%s'", value, seg.param, r.path)
		}

		uri.WriteString(value)
	}

	return uri.String(), nil
}

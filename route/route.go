// Package route implements the path templates the router matches
// requests against and generates URLs from.
//
// A template is a '/'-separated sequence of segments. A segment is either
// a literal, a named parameter {name}, a constrained parameter {name:regexp}
// or a trailing catch-all {name:*}.
package route

import (
	"fmt"
	"regexp"
	"strings"
)

// Options carries the per-route settings a registration may set.
// A nil CaseSensitive leaves the current value untouched, so the router
// default applies on first registration and later merges only override
// what they explicitly set.
type Options struct {
	Name          string
	CaseSensitive *bool
}

// Bool returns a pointer to v, for use in Options.CaseSensitive.
func Bool(v bool) *bool {
	return &v
}

type segment struct {
	literal  string
	param    string
	re       *regexp.Regexp
	catchAll bool
}

// Route is one verb+path template. The router keeps exactly one Route per
// (verb, path) pair; re-registration merges options into the existing value.
type Route struct {
	method        string
	path          string
	name          string
	caseSensitive bool

	segments   []segment
	paramNames []string
}

// Parse builds a Route from a path template. The path must begin with '/'.
// A catch-all parameter must be the final segment.
func Parse(method, path string) (*Route, error) {
	if len(path) == 0 || path[0] != '/' {
		return nil, fmt.Errorf("path must begin with '/' in path '%s'", path)
	}

	parts := strings.Split(path, "/")
	route := &Route{
		method:   method,
		path:     path,
		segments: make([]segment, 0, len(parts)),
	}

	for i, part := range parts {
		if !strings.HasPrefix(part, "{") || !strings.HasSuffix(part, "}") {
			route.segments = append(route.segments, segment{literal: part})
			continue
		}

		inner := part[1 : len(part)-1]
		name, expr := inner, ""
		if j := strings.IndexByte(inner, ':'); j >= 0 {
			name, expr = inner[:j], inner[j+1:]
		}
		if name == "" {
			return nil, fmt.Errorf("empty parameter name in path '%s'", path)
		}

		seg := segment{param: name}

		switch {
		case expr == "":
		case expr == "*":
			if i != len(parts)-1 {
				return nil, fmt.Errorf("catch-all parameter {%s:*} must be the last segment in path '%s'", name, path)
			}
			seg.catchAll = true
		default:
			re, err := regexp.Compile("^(?:" + expr + ")$")
			if err != nil {
				return nil, fmt.Errorf("invalid pattern for parameter {%s} in path '%s': %v", name, path, err)
			}
			seg.re = re
		}

		route.segments = append(route.segments, seg)
		route.paramNames = append(route.paramNames, name)
	}

	return route, nil
}

// Method returns the verb the route was registered under.
func (r *Route) Method() string { return r.method }

// Path returns the original path template.
func (r *Route) Path() string { return r.path }

// Name returns the route name, or "" when unnamed.
func (r *Route) Name() string { return r.name }

// CaseSensitive reports whether literal segments match case-sensitively.
func (r *Route) CaseSensitive() bool { return r.caseSensitive }

// ParamNames returns the declared parameter names in template order.
func (r *Route) ParamNames() []string {
	names := make([]string, len(r.paramNames))
	copy(names, r.paramNames)
	return names
}

// Merge folds opts into the route without changing its identity.
// Unset fields are left alone.
func (r *Route) Merge(opts Options) {
	if opts.Name != "" {
		r.name = opts.Name
	}
	if opts.CaseSensitive != nil {
		r.caseSensitive = *opts.CaseSensitive
	}
}

// Match attempts the template against a request path. On success it returns
// the captured parameters in template order; a match without parameters
// yields an empty, non-nil Params.
func (r *Route) Match(path string) (Params, bool) {
	if len(path) == 0 || path[0] != '/' {
		return nil, false
	}

	parts := strings.Split(path, "/")

	last := len(r.segments) - 1
	catchAll := last >= 0 && r.segments[last].catchAll

	if catchAll {
		if len(parts) <= last {
			return nil, false
		}
	} else if len(parts) != len(r.segments) {
		return nil, false
	}

	params := make(Params, 0, len(r.paramNames))

	for i, seg := range r.segments {
		if seg.catchAll {
			params = append(params, Param{
				Name:  seg.param,
				Value: "/" + strings.Join(parts[i:], "/"),
			})
			break
		}

		part := parts[i]

		if seg.param == "" {
			if r.caseSensitive {
				if part != seg.literal {
					return nil, false
				}
			} else if !strings.EqualFold(part, seg.literal) {
				return nil, false
			}
			continue
		}

		if part == "" {
			return nil, false
		}
		if seg.re != nil && !seg.re.MatchString(part) {
			return nil, false
		}

		params = append(params, Param{Name: seg.param, Value: part})
	}

	return params, true
}

package reroute

import (
	"github.com/pedia/reroute/route"
)

// matched is one successful route match: the route, its current callback
// chain and the captured parameters, normalized to a non-nil collection.
type matched struct {
	route     *route.Route
	callbacks []callback
	params    route.Params
}

// scanRoutes returns the routes consulted for a verb: the verb's own list
// first, then the wild list. Precedence inside each list is
// most-recently-registered-first.
func (router *Router) scanRoutes(method string) []*route.Route {
	specific := router.table(method, false)
	var wild *verbTable
	if method != MethodWild {
		wild = router.table(MethodWild, false)
	}

	switch {
	case specific == nil && wild == nil:
		return nil
	case wild == nil:
		return specific.routes
	case specific == nil:
		return wild.routes
	}

	routes := make([]*route.Route, 0, len(specific.routes)+len(wild.routes))
	routes = append(routes, specific.routes...)
	return append(routes, wild.routes...)
}

// nextMatch finds the first route after prev whose template matches path.
// A nil prev starts at the top of the list; otherwise scanning resumes at
// the entry following prev, so a route that declined the request is never
// retried.
func (router *Router) nextMatch(method, path string, prev *route.Route) *matched {
	method = canonicalMethod(method)

	routes := router.scanRoutes(method)
	if len(routes) == 0 {
		return nil
	}

	start := 0
	if prev != nil {
		for i, rt := range routes {
			if rt == prev {
				start = i + 1
				break
			}
		}
	}

	for _, rt := range routes[start:] {
		params, ok := rt.Match(path)
		if !ok {
			continue
		}
		if params == nil {
			params = route.Params{}
		}

		return &matched{
			route:     rt,
			callbacks: router.table(rt.Method(), false).callbacks[rt.Path()],
			params:    params,
		}
	}

	return nil
}

// matchVerb reports whether the verb's own route list (no wild fallback)
// has a template matching path. Used for Allow header computation.
func (router *Router) matchVerb(method, path string) bool {
	table := router.table(method, false)
	if table == nil {
		return false
	}

	for _, rt := range table.routes {
		if _, ok := rt.Match(path); ok {
			return true
		}
	}

	return false
}

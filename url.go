package reroute

import (
	"fmt"

	"github.com/pedia/reroute/route"
)

func (router *Router) indexName(name, method string, rt *route.Route) {
	entry := router.names[name]
	if entry == nil {
		entry = &namedRoutes{byMethod: make(map[string]*route.Route)}
		router.names[name] = entry
	}

	if _, ok := entry.byMethod[method]; !ok {
		entry.methods = append(entry.methods, method)
	}
	entry.byMethod[method] = rt
}

// URL builds the URL for the named route. When the name is registered
// under several verbs, the verb it was first registered under is used, so
// repeated calls always pick the same route.
func (router *Router) URL(name string, values map[string]string) (string, error) {
	entry := router.names[name]
	if entry == nil {
		return "", fmt.Errorf("reroute: no route named '%s'", name)
	}

	return entry.byMethod[entry.methods[0]].Generate(values)
}

// URLFor builds the URL for the named route registered under method.
func (router *Router) URLFor(method, name string, values map[string]string) (string, error) {
	entry := router.names[name]
	if entry == nil {
		return "", fmt.Errorf("reroute: no route named '%s'", name)
	}

	rt := entry.byMethod[canonicalMethod(method)]
	if rt == nil {
		return "", fmt.Errorf("reroute: route '%s' is not registered for method %s", name, method)
	}

	return rt.Generate(values)
}

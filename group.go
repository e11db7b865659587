package reroute

import (
	"net/http"
	"strings"

	"github.com/pedia/reroute/route"
)

// Group is a sub-registrar sharing the parent router's tables, with a
// common path prefix applied to every registration.
type Group struct {
	router *Router
	prefix string
}

// Group returns a new group.
func (router *Router) Group(path string) *Group {
	validatePath(path)

	if path != "/" && strings.HasSuffix(path, "/") {
		panic("group path must not end with a trailing slash")
	}

	return &Group{
		router: router,
		prefix: path,
	}
}

// Group returns a nested group with the combined prefix.
func (g *Group) Group(path string) *Group {
	return g.router.Group(g.prefix + path)
}

// Handle registers a callback chain under the group prefix.
func (g *Group) Handle(method, path string, callbacks ...Callback) *route.Route {
	return g.router.Handle(method, g.prefix+path, callbacks...)
}

// HandleWith registers a callback chain under the group prefix with
// explicit route options.
func (g *Group) HandleWith(method, path string, opts route.Options, callbacks ...Callback) *route.Route {
	return g.router.HandleWith(method, g.prefix+path, opts, callbacks...)
}

// GET is a shortcut for group.Handle(http.MethodGet, path, callbacks...)
func (g *Group) GET(path string, callbacks ...Callback) *route.Route {
	return g.Handle(http.MethodGet, path, callbacks...)
}

// HEAD is a shortcut for group.Handle(http.MethodHead, path, callbacks...)
func (g *Group) HEAD(path string, callbacks ...Callback) *route.Route {
	return g.Handle(http.MethodHead, path, callbacks...)
}

// POST is a shortcut for group.Handle(http.MethodPost, path, callbacks...)
func (g *Group) POST(path string, callbacks ...Callback) *route.Route {
	return g.Handle(http.MethodPost, path, callbacks...)
}

// PUT is a shortcut for group.Handle(http.MethodPut, path, callbacks...)
func (g *Group) PUT(path string, callbacks ...Callback) *route.Route {
	return g.Handle(http.MethodPut, path, callbacks...)
}

// PATCH is a shortcut for group.Handle(http.MethodPatch, path, callbacks...)
func (g *Group) PATCH(path string, callbacks ...Callback) *route.Route {
	return g.Handle(http.MethodPatch, path, callbacks...)
}

// DELETE is a shortcut for group.Handle(http.MethodDelete, path, callbacks...)
func (g *Group) DELETE(path string, callbacks ...Callback) *route.Route {
	return g.Handle(http.MethodDelete, path, callbacks...)
}

// CONNECT is a shortcut for group.Handle(http.MethodConnect, path, callbacks...)
func (g *Group) CONNECT(path string, callbacks ...Callback) *route.Route {
	return g.Handle(http.MethodConnect, path, callbacks...)
}

// OPTIONS is a shortcut for group.Handle(http.MethodOptions, path, callbacks...)
func (g *Group) OPTIONS(path string, callbacks ...Callback) *route.Route {
	return g.Handle(http.MethodOptions, path, callbacks...)
}

// TRACE is a shortcut for group.Handle(http.MethodTrace, path, callbacks...)
func (g *Group) TRACE(path string, callbacks ...Callback) *route.Route {
	return g.Handle(http.MethodTrace, path, callbacks...)
}

// ANY is a shortcut for group.Handle(router.MethodWild, path, callbacks...)
func (g *Group) ANY(path string, callbacks ...Callback) *route.Route {
	return g.Handle(MethodWild, path, callbacks...)
}

// ServeFiles serves files under the group prefix, see Router.ServeFiles.
func (g *Group) ServeFiles(path string, rootPath string) {
	g.router.ServeFiles(g.prefix+path, rootPath)
}

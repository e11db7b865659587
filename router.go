package reroute

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pedia/reroute/route"
	"github.com/savsgio/gotils/bytes"
)

// MethodWild wild HTTP method
const MethodWild = "*"

var (
	questionMark = byte('?')

	// MatchedRoutePathParam is the param name under which the path of the matched
	// route is stored, if Router.SaveMatchedRoutePath is set.
	MatchedRoutePathParam = fmt.Sprintf("__matchedRoutePath::%s__", bytes.Rand(make([]byte, 15)))
)

// verbTable holds one verb's registration indices: the precedence-ordered
// route list (most recently registered first), the path lookup and the
// path's current callback chain.
type verbTable struct {
	routes    []*route.Route
	byPath    map[string]*route.Route
	callbacks map[string][]callback
}

// namedRoutes indexes one route name: the verbs it was registered under,
// in registration order, and the route for each.
type namedRoutes struct {
	methods  []string
	byMethod map[string]*route.Route
}

// Router dispatches requests to chains of callbacks registered per
// verb and path template. All registration must happen before dispatch
// begins; the tables are read without synchronization afterwards.
type Router struct {
	tables             []*verbTable
	customMethodsIndex map[string]int
	registeredPaths    map[string][]string
	names              map[string]*namedRoutes
	paramCallbacks     map[string][]ParamHandler
	modifiers          []ParamModifier
	globalAllowed      string

	// CaseSensitive is the default for routes that do not set the option
	// themselves. Literal segments match case-insensitively by default.
	CaseSensitive bool

	// SaveMatchedRoutePath stores the matched route's path template under
	// MatchedRoutePathParam. Disabled by default.
	SaveMatchedRoutePath bool

	// RedirectTrailingSlash redirects to the same path with or without the
	// trailing slash when the request path itself has no matching route.
	RedirectTrailingSlash bool

	// HandleMethodNotAllowed answers unmatched requests with 405 and an
	// Allow header when another verb has a matching route.
	HandleMethodNotAllowed bool

	// HandleOPTIONS answers OPTIONS requests automatically with an Allow
	// header. Custom OPTIONS routes take precedence.
	HandleOPTIONS bool

	// GlobalOPTIONS is called for automatic OPTIONS responses after the
	// Allow header has been set.
	GlobalOPTIONS http.HandlerFunc

	// NotFound handles requests no route matched. Defaults to 404.
	NotFound http.HandlerFunc

	// MethodNotAllowed handles 405 responses. Defaults to an empty 405.
	MethodNotAllowed http.HandlerFunc

	// ErrorHandler presents an error no callback consumed. Defaults to an
	// empty 500.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// New returns a new router.
// Trailing slash redirection, 405 and automatic OPTIONS handling are
// enabled by default.
func New() *Router {
	return &Router{
		tables:                 make([]*verbTable, 10),
		customMethodsIndex:     make(map[string]int),
		registeredPaths:        make(map[string][]string),
		names:                  make(map[string]*namedRoutes),
		paramCallbacks:         make(map[string][]ParamHandler),
		RedirectTrailingSlash:  true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
	}
}

func (router *Router) methodIndexOf(method string) int {
	switch method {
	case "get":
		return 0
	case "head":
		return 1
	case "post":
		return 2
	case "put":
		return 3
	case "patch":
		return 4
	case "delete":
		return 5
	case "connect":
		return 6
	case "options":
		return 7
	case "trace":
		return 8
	case MethodWild:
		return 9
	}

	if i, ok := router.customMethodsIndex[method]; ok {
		return i
	}

	return -1
}

func (router *Router) table(method string, create bool) *verbTable {
	index := router.methodIndexOf(method)
	if index == -1 {
		if !create {
			return nil
		}

		router.tables = append(router.tables, nil)
		index = len(router.tables) - 1
		router.customMethodsIndex[method] = index
	}

	table := router.tables[index]
	if table == nil {
		if !create {
			return nil
		}

		table = &verbTable{
			byPath:    make(map[string]*route.Route),
			callbacks: make(map[string][]callback),
		}
		router.tables[index] = table
	}

	return table
}

// List returns all registered path templates grouped by canonical method.
func (router *Router) List() map[string][]string {
	return router.registeredPaths
}

// GET is a shortcut for router.Handle(http.MethodGet, path, callbacks...)
func (router *Router) GET(path string, callbacks ...Callback) *route.Route {
	return router.Handle(http.MethodGet, path, callbacks...)
}

// HEAD is a shortcut for router.Handle(http.MethodHead, path, callbacks...)
func (router *Router) HEAD(path string, callbacks ...Callback) *route.Route {
	return router.Handle(http.MethodHead, path, callbacks...)
}

// POST is a shortcut for router.Handle(http.MethodPost, path, callbacks...)
func (router *Router) POST(path string, callbacks ...Callback) *route.Route {
	return router.Handle(http.MethodPost, path, callbacks...)
}

// PUT is a shortcut for router.Handle(http.MethodPut, path, callbacks...)
func (router *Router) PUT(path string, callbacks ...Callback) *route.Route {
	return router.Handle(http.MethodPut, path, callbacks...)
}

// PATCH is a shortcut for router.Handle(http.MethodPatch, path, callbacks...)
func (router *Router) PATCH(path string, callbacks ...Callback) *route.Route {
	return router.Handle(http.MethodPatch, path, callbacks...)
}

// DELETE is a shortcut for router.Handle(http.MethodDelete, path, callbacks...)
func (router *Router) DELETE(path string, callbacks ...Callback) *route.Route {
	return router.Handle(http.MethodDelete, path, callbacks...)
}

// CONNECT is a shortcut for router.Handle(http.MethodConnect, path, callbacks...)
func (router *Router) CONNECT(path string, callbacks ...Callback) *route.Route {
	return router.Handle(http.MethodConnect, path, callbacks...)
}

// OPTIONS is a shortcut for router.Handle(http.MethodOptions, path, callbacks...)
func (router *Router) OPTIONS(path string, callbacks ...Callback) *route.Route {
	return router.Handle(http.MethodOptions, path, callbacks...)
}

// TRACE is a shortcut for router.Handle(http.MethodTrace, path, callbacks...)
func (router *Router) TRACE(path string, callbacks ...Callback) *route.Route {
	return router.Handle(http.MethodTrace, path, callbacks...)
}

// ANY is a shortcut for router.Handle(router.MethodWild, path, callbacks...)
//
// WARNING: Use only for routes where the request method is not important
func (router *Router) ANY(path string, callbacks ...Callback) *route.Route {
	return router.Handle(MethodWild, path, callbacks...)
}

// Handle registers a callback chain for the given path and method.
//
// For GET, POST, PUT, PATCH and DELETE requests the respective shortcut
// functions can be used.
//
// This function is intended for bulk loading and to allow the usage of less
// frequently used, non-standardized or custom methods (e.g. for internal
// communication with a proxy).
func (router *Router) Handle(method, path string, callbacks ...Callback) *route.Route {
	return router.HandleWith(method, path, route.Options{}, callbacks...)
}

// HandleWith registers a callback chain with explicit route options.
//
// Exactly one Route exists per (method, path) pair: registering the same
// pair again merges opts into the existing Route and replaces its callback
// chain wholesale. Chains from separate registrations never merge.
func (router *Router) HandleWith(method, path string, opts route.Options, callbacks ...Callback) *route.Route {
	switch {
	case len(method) == 0:
		panic("method must not be empty")
	case len(callbacks) == 0:
		panic("at least one callback is required")
	default:
		validatePath(path)
	}

	method = canonicalMethod(method)
	flat := flatten(callbacks)

	if opts.CaseSensitive == nil {
		cs := router.CaseSensitive
		opts.CaseSensitive = &cs
	}

	table := router.table(method, true)

	rt := table.byPath[path]
	if rt == nil {
		var err error
		rt, err = route.Parse(method, path)
		if err != nil {
			panic(err.Error())
		}

		rt.Merge(opts)

		// prepend: the newest registration wins precedence
		table.routes = append([]*route.Route{rt}, table.routes...)
		table.byPath[path] = rt
		router.registeredPaths[method] = append(router.registeredPaths[method], path)

		router.globalAllowed = router.allowed("*", "")
	} else {
		rt.Merge(opts)
	}

	if name := rt.Name(); name != "" {
		router.indexName(name, method, rt)
	}

	table.callbacks[path] = flat

	return rt
}

// Param registers a callback to run for the named parameter whenever a
// matched route captured it, before any route handlers. Registered
// modifiers are applied in order and may replace the callback; the final
// result must be non-nil.
func (router *Router) Param(name string, fn ParamHandler) {
	if len(name) == 0 {
		panic("param name must not be empty")
	}

	for _, modify := range router.modifiers {
		if replaced := modify(name, fn); replaced != nil {
			fn = replaced
		}
	}

	if fn == nil {
		panic("param callback for '" + name + "' must not be nil")
	}

	router.paramCallbacks[name] = append(router.paramCallbacks[name], fn)
}

// ParamModifier registers a modifier applied to every subsequent Param
// registration.
func (router *Router) ParamModifier(fn ParamModifier) {
	if fn == nil {
		panic("param modifier must not be nil")
	}

	router.modifiers = append(router.modifiers, fn)
}

// Lookup allows the manual lookup of a method + path combo.
// This is e.g. useful to build a framework around this router.
// If a route matches, it returns the Route and the captured parameters.
func (router *Router) Lookup(method, path string) (*route.Route, route.Params, bool) {
	if m := router.nextMatch(method, path, nil); m != nil {
		return m.route, m.params, true
	}
	return nil, nil, false
}

// ServeFiles serves files from the given file system root.
// The path must end with "/{filepath:*}", files are then served from the local
// path /defined/root/dir/{filepath:*}.
// For example if root is "/etc" and {filepath:*} is "passwd", the local file
// "/etc/passwd" would be served.
// Use:
//
//	router.ServeFiles("/src/{filepath:*}", "./")
func (router *Router) ServeFiles(path string, rootPath string) {
	router.ServeFilesCustom(path, http.Dir(rootPath))
}

// ServeFilesCustom serves files from the given file system settings.
// The path must end with "/{filepath:*}", files are then served from the local
// path /defined/root/dir/{filepath:*}.
// Internally an http.FileServer is used, therefore http.NotFound is used instead
// of the Router's NotFound handler.
// Use:
//
//	router.ServeFilesCustom("/src/{filepath:*}", customFS)
func (router *Router) ServeFilesCustom(path string, fs http.FileSystem) {
	suffix := "/{filepath:*}"

	if !strings.HasSuffix(path, suffix) {
		panic("path must end with " + suffix + " in path '" + path + "'")
	}

	prefix := path[:len(path)-len(suffix)]
	fileServer := http.StripPrefix(prefix, http.FileServer(fs))

	router.GET(path, Wrap(fileServer))
}

func (router *Router) allowed(path, reqMethod string) (allow string) {
	allowed := make([]string, 0, 9)

	if path == "*" || path == "/*" { // server-wide
		// empty method is used for internal calls to refresh the cache
		if reqMethod == "" {
			for method := range router.registeredPaths {
				if method == "options" {
					continue
				}
				// Add request method to list of allowed methods
				allowed = append(allowed, strings.ToUpper(method))
			}
		} else {
			return router.globalAllowed
		}
	} else { // specific path
		for method := range router.registeredPaths {
			// Skip the requested method - we already tried this one
			if method == reqMethod || method == "options" {
				continue
			}

			if router.matchVerb(method, path) {
				// Add request method to list of allowed methods
				allowed = append(allowed, strings.ToUpper(method))
			}
		}
	}

	if len(allowed) > 0 {
		// Add request method to list of allowed methods
		allowed = append(allowed, http.MethodOptions)

		// Sort allowed methods.
		// sort.Strings(allowed) unfortunately causes unnecessary allocations
		// due to allowed being moved to the heap and interface conversion
		for i, l := 1, len(allowed); i < l; i++ {
			for j := i; j > 0 && allowed[j] < allowed[j-1]; j-- {
				allowed[j], allowed[j-1] = allowed[j-1], allowed[j]
			}
		}

		// return as comma separated list
		return strings.Join(allowed, ", ")
	}
	return
}

package reroute

import (
	"net/http"

	"github.com/valyala/bytebufferpool"
)

// ServeHTTP makes the router implement the http.Handler interface.
//
// It dispatches the request and, when dispatch terminates, presents
// whatever the callbacks left unhandled: an unconsumed error goes to
// ErrorHandler (default 500); a request no route matched goes through
// trailing slash redirection, automatic OPTIONS and 405 handling, then
// NotFound (default 404).
func (router *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d := &dispatcher{
		router: router,
		w:      w,
		base:   r,
		r:      r,
	}
	d.done = func(err error) {
		if err != nil {
			if router.ErrorHandler != nil {
				router.ErrorHandler(w, r, err)
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		// current survives only when a chain ran to completion: it is nil
		// when nothing matched, and a route that resumed with Skip clears
		// it on the way back to matching, so a request every candidate
		// declined falls through like any other unmatched request.
		if d.current != nil {
			return
		}

		router.handleMissing(w, r)
	}
	d.run()
}

// handleMissing is the tail of request handling when no route matched.
func (router *Router) handleMissing(w http.ResponseWriter, r *http.Request) {
	method := canonicalMethod(r.Method)
	path := r.URL.Path

	if r.Method != http.MethodConnect && path != "/" && router.RedirectTrailingSlash {
		if router.tryRedirect(w, r, method, path) {
			return
		}
	}

	if router.HandleOPTIONS && r.Method == http.MethodOptions {
		// Handle OPTIONS requests

		if allow := router.allowed(path, "options"); allow != "" {
			w.Header().Set("Allow", allow)
			if router.GlobalOPTIONS != nil {
				router.GlobalOPTIONS(w, r)
			}
			return
		}
	} else if router.HandleMethodNotAllowed {
		// Handle 405

		if allow := router.allowed(path, method); allow != "" {
			w.Header().Set("Allow", allow)
			if router.MethodNotAllowed != nil {
				router.MethodNotAllowed(w, r)
			} else {
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
			return
		}
	}

	// Handle 404
	if router.NotFound != nil {
		router.NotFound(w, r)
	} else {
		w.WriteHeader(http.StatusNotFound)
	}
}

// tryRedirect redirects to the same path with the trailing slash flipped
// when that variant has a matching route.
func (router *Router) tryRedirect(w http.ResponseWriter, r *http.Request, method, path string) bool {
	// Moved Permanently, request with GET method
	code := http.StatusMovedPermanently
	if r.Method != http.MethodGet {
		// Permanent Redirect, request with same method
		code = http.StatusPermanentRedirect
	}

	uri := bytebufferpool.Get()
	defer bytebufferpool.Put(uri)

	if len(path) > 1 && path[len(path)-1] == '/' {
		uri.SetString(path[:len(path)-1])
	} else {
		uri.SetString(path)
		uri.WriteByte('/')
	}

	if router.nextMatch(method, uri.String(), nil) == nil {
		return false
	}

	if queryBuf := r.URL.RawQuery; len(queryBuf) > 0 {
		uri.WriteByte(questionMark)
		uri.WriteString(queryBuf)
	}

	http.Redirect(w, r, uri.String(), code)

	return true
}

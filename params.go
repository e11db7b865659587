package reroute

import (
	"context"
	"net/http"

	"github.com/pedia/reroute/route"
)

type paramsKey struct{}

func requestWithParams(r *http.Request, params route.Params) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), paramsKey{}, params))
}

// Params returns the parameters captured for the request's matched route,
// in template order. It is empty until dispatch has matched a route.
func Params(r *http.Request) route.Params {
	params, _ := r.Context().Value(paramsKey{}).(route.Params)
	return params
}

// UserValue returns the matched value of the named path parameter, or ""
// when the parameter was not captured.
func UserValue(r *http.Request, name string) string {
	value, _ := Params(r).Get(name)
	return value
}

// MatchedRoutePath returns the path template of the matched route, if
// Router.SaveMatchedRoutePath is set.
func MatchedRoutePath(r *http.Request) string {
	return UserValue(r, MatchedRoutePathParam)
}

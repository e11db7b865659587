/*
Package reroute is an HTTP request router with a continuation-passing
middleware dispatcher.

A trivial example is:

	package main

	import (
		"fmt"
		"log"
		"net/http"

		"github.com/pedia/reroute"
	)

	// Index is the index handler
	func Index(w http.ResponseWriter, r *http.Request, next reroute.Next) {
		fmt.Fprint(w, "Welcome!\n")
		next(reroute.OK())
	}

	// Hello is the Hello handler
	func Hello(w http.ResponseWriter, r *http.Request, next reroute.Next) {
		fmt.Fprintf(w, "hello, %s!\n", reroute.UserValue(r, "name"))
		next(reroute.OK())
	}

	func main() {
		r := reroute.New()
		r.GET("/", reroute.Handler(Index))
		r.GET("/hello/{name}", reroute.Handler(Hello))

		log.Fatal(http.ListenAndServe(":8080", r))
	}

The router matches incoming requests by the request method and the path.
Routes registered later take precedence over earlier ones for the same
method. Each route carries an ordered chain of callbacks; a callback hands
control to the rest of the chain by invoking its continuation:

	next(reroute.OK())        // run the next callback
	next(reroute.Skip())      // this route does not apply after all; try
	                          // the next route that matches the request
	next(reroute.Fail(err))   // record err; plain handlers are passed
	                          // over until an ErrorHandler consumes it

An ErrorHandler only runs while an error is outstanding, so a chain can
mix request logic and recovery logic:

	r.GET("/widgets/{id}",
		reroute.Handler(loadWidget),
		reroute.Handler(renderWidget),
		reroute.ErrorHandler(renderWidgetError),
	)

Callbacks registered with Router.Param run whenever a matched route
captured that parameter, before any route handlers:

	r.Param("id", func(w http.ResponseWriter, r *http.Request, next reroute.Next, value, name string) {
		if !valid(value) {
			next(reroute.Fail(errBadID))
			return
		}
		next(reroute.OK())
	})

The registered path, against which the router matches incoming requests, can
contain three types of parameters:

	Syntax          Type
	{name}          named parameter
	{name:regexp}   named parameter, constrained
	{name:*}        catch-all parameter

Named parameters are dynamic path segments. They match anything until the
next '/' or the path end:

	Path: /blog/{category}/{post}

	Requests:
	 /blog/go/request-routers            match: category="go", post="request-routers"
	 /blog/go/request-routers/           no match, but the router would redirect
	 /blog/go/                           no match
	 /blog/go/request-routers/comments   no match

Catch-all parameters match anything until the path end, including the
directory index (the '/' before the catch-all). Since they match anything
until the end, catch-all parameters must always be the final path element.

	Path: /files/{filepath:*}

	Requests:
	 /files/                             match: filepath="/"
	 /files/LICENSE                      match: filepath="/LICENSE"
	 /files/templates/article.html       match: filepath="/templates/article.html"
	 /files                              no match, but the router would redirect

The value of parameters is available through reroute.Params(r) and
reroute.UserValue(r, name).

Routes registered with a name can be turned back into URLs:

	r.HandleWith("GET", "/users/{id}", route.Options{Name: "user"}, reroute.Handler(showUser))
	url, err := r.URL("user", map[string]string{"id": "42"}) // "/users/42"
*/
package reroute

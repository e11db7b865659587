package reroute

import (
	"fmt"
	"net/http"
)

type resultKind uint8

const (
	resultOK resultKind = iota
	resultSkip
	resultFail
)

// Result is the outcome a callback reports through its continuation.
// Construct one with OK, Skip or Fail.
type Result struct {
	kind resultKind
	err  error
}

// OK resumes dispatch with no outstanding error.
func OK() Result {
	return Result{}
}

// Skip tells the dispatcher to treat the current route as if it had not
// matched and to try the next registered route. The signal is consumed by
// the dispatcher and never reaches the terminal continuation.
func Skip() Result {
	return Result{kind: resultSkip}
}

// Fail resumes dispatch with err outstanding. Plain handlers are passed
// over until an ErrorHandler consumes it. Fail(nil) is equivalent to OK().
func Fail(err error) Result {
	if err == nil {
		return Result{}
	}
	return Result{kind: resultFail, err: err}
}

// Next resumes dispatch after a callback finishes its work. Each callback
// must invoke it exactly once; it may do so after the callback returns,
// from other goroutines, to continue asynchronously.
type Next func(Result)

// Handler processes a request and resumes the chain through next.
type Handler func(w http.ResponseWriter, r *http.Request, next Next)

// ErrorHandler is only invoked while an error is outstanding; it receives
// the error and may consume it by resuming with OK.
type ErrorHandler func(err error, w http.ResponseWriter, r *http.Request, next Next)

// Chain groups callbacks so shared stacks can be registered as one unit.
// Chains nest arbitrarily and are flattened at registration.
type Chain []Callback

// Callback is a unit of request-processing logic registered on a route:
// a Handler, an ErrorHandler or a Chain of them.
type Callback interface {
	callback()
}

func (Handler) callback()      {}
func (ErrorHandler) callback() {}
func (Chain) callback()        {}

// ParamHandler runs before route handlers whenever its parameter name was
// captured by the match. It receives the captured value and name.
type ParamHandler func(w http.ResponseWriter, r *http.Request, next Next, value, name string)

// ParamModifier may rewrite a parameter callback at registration time.
// A nil return leaves the callback unchanged.
type ParamModifier func(name string, handler ParamHandler) ParamHandler

// Wrap adapts a plain http.Handler into a Handler that serves the request
// and then resumes the chain.
func Wrap(h http.Handler) Handler {
	return func(w http.ResponseWriter, r *http.Request, next Next) {
		h.ServeHTTP(w, r)
		next(OK())
	}
}

// WrapFunc adapts a plain http.HandlerFunc into a Handler.
func WrapFunc(h http.HandlerFunc) Handler {
	return Wrap(h)
}

// callback is the stored form: exactly one of the two fields is set, and
// the dispatcher branches on which.
type callback struct {
	handler      Handler
	errorHandler ErrorHandler
}

func flatten(callbacks []Callback) []callback {
	return appendFlat(make([]callback, 0, len(callbacks)), callbacks)
}

func appendFlat(flat []callback, callbacks []Callback) []callback {
	for _, cb := range callbacks {
		switch fn := cb.(type) {
		case Handler:
			if fn == nil {
				panic("callback must not be nil")
			}
			flat = append(flat, callback{handler: fn})
		case ErrorHandler:
			if fn == nil {
				panic("callback must not be nil")
			}
			flat = append(flat, callback{errorHandler: fn})
		case Chain:
			flat = appendFlat(flat, fn)
		case nil:
			panic("callback must not be nil")
		default:
			panic(fmt.Sprintf("unsupported callback type %T", cb))
		}
	}
	return flat
}

package reroute

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/pedia/reroute/route"
)

type dispatchState uint8

const (
	stateMatch dispatchState = iota
	stateParams
	stateHandlers
	stateDone
)

// dispatcher drives one request through the phase machine:
// match -> param callbacks -> route handlers -> terminal, with a back-edge
// to match whenever a callback resumes with Skip.
//
// Control flow is an iterative trampoline: run steps through the phases
// until a callback defers its continuation, then the continuation call
// re-enters run on whichever goroutine it happens on. Continuation depth
// stays constant no matter how many routes are retried or how long the
// chains are.
//
// A continuation may arrive from another goroutine while the callback is
// still returning, so each step hands the loop over through an atomic
// token: whoever loses the compare-and-swap walks away, the winner's side
// continues the loop. The token write in next also publishes the applied
// result to the side that continues.
type dispatcher struct {
	router *Router
	w      http.ResponseWriter
	base   *http.Request
	r      *http.Request
	done   func(error)

	state   dispatchState
	prev    *route.Route
	current *matched
	err     error
	skip    bool

	// cursors: current param, callback within that param's list, handler
	pi, ci, hi int

	token int32
}

const (
	stepRunning int32 = iota
	stepResumed
	stepParked
)

// Dispatch runs the request through matching and the callback phases and
// invokes done exactly once when dispatch terminates, with any error no
// callback consumed (nil otherwise, including when nothing matched).
//
// Each callback must invoke its continuation exactly once, possibly after
// returning; the engine imposes no timeout, and a callback that never
// resumes stalls its request. Registration must be finished before the
// first Dispatch call.
func (router *Router) Dispatch(w http.ResponseWriter, r *http.Request, done func(error)) {
	d := &dispatcher{
		router: router,
		w:      w,
		base:   r,
		r:      r,
		done:   done,
	}
	d.run()
}

func (d *dispatcher) run() {
	for {
		switch d.state {
		case stateMatch:
			m := d.router.nextMatch(d.base.Method, d.base.URL.Path, d.prev)
			if m == nil {
				d.state = stateDone
				continue
			}

			d.prev = m.route
			d.current = m

			if d.router.SaveMatchedRoutePath {
				m.params = append(m.params, route.Param{
					Name:  MatchedRoutePathParam,
					Value: m.route.Path(),
				})
			}

			d.r = requestWithParams(d.base, m.params)
			d.pi, d.ci, d.hi = 0, 0, 0
			d.state = stateParams

		case stateParams:
			if d.skip {
				d.reroute()
				continue
			}
			if d.err != nil {
				// param callbacks never run under an outstanding error
				d.state = stateHandlers
				continue
			}

			fn, value, name, ok := d.nextParamCallback()
			if !ok {
				d.state = stateHandlers
				continue
			}

			if !d.step(func(next Next) { fn(d.w, d.r, next, value, name) }) {
				return
			}

		case stateHandlers:
			if d.skip {
				d.reroute()
				continue
			}

			cb, ok := d.nextHandler()
			if !ok {
				d.state = stateDone
				continue
			}

			if cb.errorHandler != nil {
				err := d.err
				if !d.step(func(next Next) { cb.errorHandler(err, d.w, d.r, next) }) {
					return
				}
			} else {
				if !d.step(func(next Next) { cb.handler(d.w, d.r, next) }) {
					return
				}
			}

		case stateDone:
			done := d.done
			d.done = nil
			if done != nil {
				done(d.err)
			}
			return
		}
	}
}

// nextParamCallback advances the param cursors to the next registered
// callback for a matched parameter. Parameters without callbacks are
// passed over.
func (d *dispatcher) nextParamCallback() (ParamHandler, string, string, bool) {
	params := d.current.params

	for d.pi < len(params) {
		callbacks := d.router.paramCallbacks[params[d.pi].Name]
		if d.ci < len(callbacks) {
			fn := callbacks[d.ci]
			d.ci++
			return fn, params[d.pi].Value, params[d.pi].Name, true
		}

		d.pi++
		d.ci = 0
	}

	return nil, "", "", false
}

// nextHandler advances the handler cursor to the next invocable callback.
// While an error is outstanding only error handlers are invocable; plain
// handlers are passed over, and vice versa.
func (d *dispatcher) nextHandler() (callback, bool) {
	callbacks := d.current.callbacks

	for d.hi < len(callbacks) {
		cb := callbacks[d.hi]
		d.hi++

		if d.err != nil {
			if cb.errorHandler != nil {
				return cb, true
			}
			continue
		}
		if cb.handler != nil {
			return cb, true
		}
	}

	return callback{}, false
}

// step invokes one callback. It reports whether this goroutine keeps the
// loop: true when the callback resumed before step could park, false when
// the pending continuation call re-enters run instead. A panic inside the
// callback is captured and becomes the outstanding error for the next
// step.
func (d *dispatcher) step(invoke func(Next)) bool {
	atomic.StoreInt32(&d.token, stepRunning)

	panicked := false
	func() {
		defer func() {
			if rcv := recover(); rcv != nil {
				d.apply(Fail(recoveredError(rcv)))
				panicked = true
			}
		}()

		invoke(d.next)
	}()
	if panicked {
		return true
	}

	if atomic.CompareAndSwapInt32(&d.token, stepRunning, stepParked) {
		// parked before the continuation arrived; next owns the loop
		return false
	}

	// the continuation won the swap and already applied its result
	return true
}

func (d *dispatcher) next(res Result) {
	// the result must be in place before the token write publishes it
	d.apply(res)

	if atomic.CompareAndSwapInt32(&d.token, stepRunning, stepResumed) {
		// step has not parked; its caller continues the loop
		return
	}

	// step parked first, so this call owns the loop
	d.run()
}

func (d *dispatcher) apply(res Result) {
	switch res.kind {
	case resultFail:
		d.err, d.skip = res.err, false
	case resultSkip:
		d.err, d.skip = nil, true
	default:
		d.err, d.skip = nil, false
	}
}

// reroute consumes a skip signal and re-enters matching at the route
// after the one that declined.
func (d *dispatcher) reroute() {
	d.skip = false
	d.err = nil
	d.current = nil
	d.state = stateMatch
}

func recoveredError(rcv interface{}) error {
	if err, ok := rcv.(error); ok {
		return err
	}
	return fmt.Errorf("%v", rcv)
}

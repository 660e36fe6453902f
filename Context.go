package klein

import (
	"net/http"

	"github.com/danidoble/klein/core/ptn"
)

// Context is the window a handler gets into the dispatch pass.
type Context interface {
	// Method returns the normalized (uppercase) request method.
	Method() string

	// Path returns the request path being matched, query and
	// fragment already stripped.
	Path() string

	// Params returns the parameter sink for this pass. Every route
	// matched so far has merged its captures in; handlers may read
	// and write it freely.
	Params() ptn.Params

	// Route returns the route whose handler is currently running.
	Route() *Route

	// Stop ends the pass after the current handler returns; no
	// further routes are evaluated.
	Stop()

	// Stopped reports whether Stop has been called during this pass.
	Stopped() bool

	// Set stores a value for later handlers in the same pass.
	Set(key string, value any)

	// Get returns a value stored by an earlier handler, or nil.
	Get(key string) any

	// Has reports whether key holds a value.
	Has(key string) bool

	// Delete removes a stored value.
	Delete(key string)

	// Request returns the underlying HTTP request, or nil when the
	// pass was started synthetically via Dispatch.
	Request() *http.Request

	// Writer returns the underlying response writer, or nil when the
	// pass was started synthetically via Dispatch.
	Writer() http.ResponseWriter
}

// context carries the mutable state of one dispatch pass.
// One instance lives per pass and is never shared between passes, so
// handlers can use it without synchronization.
type context struct {
	method  string
	path    string
	params  ptn.Params
	route   *Route
	stopped bool
	data    map[string]any
	req     *http.Request
	writer  http.ResponseWriter
}

func newContext(method string, path string) *context {
	return &context{
		method: method,
		path:   path,
		params: ptn.NewParams(),
	}
}

func (ctx *context) Method() string {
	return ctx.method
}

func (ctx *context) Path() string {
	return ctx.path
}

func (ctx *context) Params() ptn.Params {
	return ctx.params
}

func (ctx *context) Route() *Route {
	return ctx.route
}

func (ctx *context) Stop() {
	ctx.stopped = true
}

func (ctx *context) Stopped() bool {
	return ctx.stopped
}

// Set stores a value under key, allocating the data map on first use.
func (ctx *context) Set(key string, value any) {
	if ctx.data == nil {
		ctx.data = make(map[string]any, 4)
	}
	ctx.data[key] = value
}

func (ctx *context) Get(key string) any {
	if ctx.data == nil {
		return nil
	}
	return ctx.data[key]
}

func (ctx *context) Has(key string) bool {
	_, ok := ctx.data[key]
	return ok
}

func (ctx *context) Delete(key string) {
	delete(ctx.data, key)
}

func (ctx *context) Request() *http.Request {
	return ctx.req
}

func (ctx *context) Writer() http.ResponseWriter {
	return ctx.writer
}

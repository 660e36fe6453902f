package klein

import (
	"log"
	"net/http"
	"strings"

	"github.com/danidoble/klein/consts"
)

// RouterOpts configures a Router.
type RouterOpts struct {
	// Verbose logs route registrations and dispatch summaries.
	Verbose bool

	// ErrorHandler receives handler errors surfaced through ServeHTTP.
	// The default logs the error and writes a 500.
	ErrorHandler func(ctx Context, err error)

	// NotFound runs when ServeHTTP dispatches a request no route
	// matched. The default writes a plain 404.
	NotFound Handler

	// MethodNotAllowed runs when ServeHTTP dispatches a request whose
	// path matched some route but whose method was rejected
	// everywhere. The default writes a 405 with an Allow header.
	MethodNotAllowed Handler
}

// Router holds routes in registration order and dispatches requests
// against them. Registration order is evaluation order, permanently:
// there is no re-sorting and no priority, and several routes may run
// for one request.
//
// Register everything before serving traffic. The route list is
// read-only during dispatch, so concurrent dispatches need no locking,
// but registration concurrent with dispatch is not supported.
type Router struct {
	routes       []*Route
	named        map[string]*Route
	factory      *RouteFactory
	verbose      bool
	errorHandler func(ctx Context, err error)
	notFound     Handler
	notAllowed   Handler
}

// NewRouter creates an empty router.
func NewRouter(opts ...RouterOpts) *Router {
	r := &Router{
		named:   make(map[string]*Route),
		factory: NewRouteFactory(),
		errorHandler: func(ctx Context, err error) {
			log.Println(ctx.Method(), ctx.Path(), err)
			if w := ctx.Writer(); w != nil {
				http.Error(w, http.StatusText(consts.StatusInternalServerError), consts.StatusInternalServerError)
			}
		},
	}

	if len(opts) == 1 {
		r.verbose = opts[0].Verbose
		if opts[0].ErrorHandler != nil {
			r.errorHandler = opts[0].ErrorHandler
		}
		r.notFound = opts[0].NotFound
		r.notAllowed = opts[0].MethodNotAllowed
	}

	return r
}

// Add appends an already-built route to the evaluation order and
// indexes its name. Later routes under an existing name win the name;
// both stay in the evaluation order.
func (r *Router) Add(route *Route) error {
	if route == nil {
		return ErrNilRoute
	}

	r.routes = append(r.routes, route)
	if name := route.Name(); name != "" {
		r.named[name] = route
	}

	if r.verbose {
		log.Printf("route %s %q registered", methodsLabel(route.methods), route.Pattern())
	}
	return nil
}

// Respond builds a route through the factory (namespace applied) and
// registers it. The call is atomic: any validation or compile failure
// returns before the registry is touched, so a failed call leaves the
// route list exactly as it was.
func (r *Router) Respond(method any, pattern string, handler Handler, opts ...RouteOpts) (*Route, error) {
	route, err := r.factory.Build(handler, pattern, method, opts...)
	if err != nil {
		return nil, err
	}
	if err := r.Add(route); err != nil {
		return nil, err
	}
	return route, nil
}

// Get registers handler for GET requests on pattern.
func (r *Router) Get(pattern string, handler Handler, opts ...RouteOpts) (*Route, error) {
	return r.Respond(consts.MethodGet, pattern, handler, opts...)
}

// Post registers handler for POST requests on pattern.
func (r *Router) Post(pattern string, handler Handler, opts ...RouteOpts) (*Route, error) {
	return r.Respond(consts.MethodPost, pattern, handler, opts...)
}

// Put registers handler for PUT requests on pattern.
func (r *Router) Put(pattern string, handler Handler, opts ...RouteOpts) (*Route, error) {
	return r.Respond(consts.MethodPut, pattern, handler, opts...)
}

// Patch registers handler for PATCH requests on pattern.
func (r *Router) Patch(pattern string, handler Handler, opts ...RouteOpts) (*Route, error) {
	return r.Respond(consts.MethodPatch, pattern, handler, opts...)
}

// Delete registers handler for DELETE requests on pattern.
func (r *Router) Delete(pattern string, handler Handler, opts ...RouteOpts) (*Route, error) {
	return r.Respond(consts.MethodDelete, pattern, handler, opts...)
}

// Head registers handler for HEAD requests on pattern.
func (r *Router) Head(pattern string, handler Handler, opts ...RouteOpts) (*Route, error) {
	return r.Respond(consts.MethodHead, pattern, handler, opts...)
}

// Options registers handler for OPTIONS requests on pattern.
func (r *Router) Options(pattern string, handler Handler, opts ...RouteOpts) (*Route, error) {
	return r.Respond(consts.MethodOptions, pattern, handler, opts...)
}

// Any registers handler for every method on pattern.
func (r *Router) Any(pattern string, handler Handler, opts ...RouteOpts) (*Route, error) {
	return r.Respond(nil, pattern, handler, opts...)
}

// With runs fn with prefix appended to the factory's namespace and
// restores the previous namespace afterwards. Routes registered inside
// fn get the prefixed patterns.
func (r *Router) With(prefix string, fn func(r *Router)) {
	r.factory.With(prefix, func(*RouteFactory) { fn(r) })
}

// Factory returns the factory the router builds routes through, for
// callers that manage namespaces directly.
func (r *Router) Factory() *RouteFactory {
	return r.factory
}

// FindByName returns the route most recently registered under name,
// or nil when no route carries it.
func (r *Router) FindByName(name string) *Route {
	return r.named[name]
}

// Routes returns a snapshot of the evaluation order.
func (r *Router) Routes() []*Route {
	return append([]*Route(nil), r.routes...)
}

// PathFor renders a concrete path for the route registered under
// name, filling placeholders from params. Unknown names fail with
// ErrRouteNotFound; missing mandatory placeholders fail with
// ptn.ErrMissingParam.
func (r *Router) PathFor(name string, params map[string]string) (string, error) {
	route := r.named[name]
	if route == nil {
		return "", ErrRouteNotFound
	}
	return route.matcher.BuildPath(params)
}

// Dispatch evaluates every route in registration order against one
// request and reports the outcome.
//
// The method is uppercased and the path is stripped of query and
// fragment before matching. Each pass owns a fresh parameter sink;
// captures accumulate across matched routes with overwrite-on-
// collision semantics. A handler error aborts the pass: the partial
// outcome and the unmodified error are both returned. "Nothing
// matched" is a zero MatchedCount, never an error.
func (r *Router) Dispatch(method string, path string) (Outcome, error) {
	ctx := newContext(strings.ToUpper(method), trimPath(path))
	return r.dispatch(ctx)
}

// dispatch walks the route list for one prepared context.
func (r *Router) dispatch(ctx *context) (Outcome, error) {
	out := Outcome{}

	for _, route := range r.routes {
		// Path test first; a miss has no side effects at all.
		params, ok := route.matcher.Match(ctx.path)
		if !ok {
			continue
		}

		// Method mismatch on a matched path is recorded for
		// diagnostics but neither counts nor executes.
		if !route.AllowsMethod(ctx.method) {
			out.allowMethods(route.methods)
			continue
		}

		ctx.params.Merge(params)
		if route.counts {
			out.MatchedCount++
		}

		ctx.route = route
		err := route.handler(ctx)
		out.Executed = append(out.Executed, route)

		switch nextFlow(err, ctx.stopped) {
		case flowAbort:
			return out, err
		case flowStop:
			out.Stopped = true
			if r.verbose {
				r.logPass(ctx, &out)
			}
			return out, nil
		}
	}

	if r.verbose {
		r.logPass(ctx, &out)
	}
	return out, nil
}

func (r *Router) logPass(ctx *context, out *Outcome) {
	log.Printf("dispatch %s %s: matched=%d executed=%d stopped=%v",
		ctx.method, ctx.path, out.MatchedCount, len(out.Executed), out.Stopped)
}

// methodsLabel renders a method filter for logs and route tables.
func methodsLabel(methods []string) string {
	if len(methods) == 0 {
		return "ANY"
	}
	return strings.Join(methods, ",")
}

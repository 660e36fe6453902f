package klein

import (
	"fmt"
	"strings"

	"github.com/danidoble/klein/core/ptn"
)

// Handler is the function a route runs when it matches a request.
// Returning a non-nil error aborts the dispatch pass and hands the
// error to the caller unmodified; to end the pass cleanly instead,
// call ctx.Stop().
type Handler func(ctx Context) error

// RouteOpts carries the optional knobs of route construction.
type RouteOpts struct {
	// Name registers the route for reverse lookup via FindByName and
	// PathFor. Names are unique by convention only: registering a
	// second route under the same name makes the later one win.
	Name string

	// NoCount excludes the route from the dispatch match counter.
	// The route still executes when it matches and still appears in
	// Outcome.Executed; it just never counts toward MatchedCount.
	// Useful for probe routes that observe traffic without committing
	// the dispatch to a "matched" result.
	NoCount bool
}

// Route binds an HTTP method filter and a compiled path pattern to a
// handler. Routes are immutable once constructed; all mutation happens
// at construction time so a registered route list can be read by any
// number of concurrent dispatches.
type Route struct {
	handler Handler
	pattern string
	matcher *ptn.Matcher
	methods []string // nil admits every method
	counts  bool
	name    string
}

// NewRoute validates the inputs, compiles the pattern and returns the
// route. The handler must be non-nil and the method filter must be
// nil (any method), a single token, or a slice of tokens; tokens are
// uppercased here so method matching never sees raw input. An empty
// pattern (or "*") builds a catch-all route.
//
// Every failure leaves nothing behind: a route either constructs
// completely or not at all.
func NewRoute(handler Handler, pattern string, method any, opts ...RouteOpts) (*Route, error) {
	if handler == nil {
		return nil, ErrInvalidHandler
	}

	methods, err := normalizeMethods(method)
	if err != nil {
		return nil, err
	}

	matcher, err := ptn.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}

	route := &Route{
		handler: handler,
		pattern: pattern,
		matcher: matcher,
		methods: methods,
		counts:  true,
	}

	if len(opts) == 1 {
		route.name = opts[0].Name
		route.counts = !opts[0].NoCount
	}

	return route, nil
}

// Handler returns the function the route runs on a match.
func (r *Route) Handler() Handler {
	return r.handler
}

// Pattern returns the pattern string the route was built from,
// namespace prefix included.
func (r *Route) Pattern() string {
	return r.pattern
}

// Matcher returns the compiled pattern.
func (r *Route) Matcher() *ptn.Matcher {
	return r.matcher
}

// Methods returns a copy of the normalized method filter.
// A nil result means the route admits every method.
func (r *Route) Methods() []string {
	if r.methods == nil {
		return nil
	}
	return append([]string(nil), r.methods...)
}

// Name returns the reverse-lookup name, or "" for unnamed routes.
func (r *Route) Name() string {
	return r.name
}

// CountsAsMatch reports whether a hit on this route increments the
// dispatch match counter.
func (r *Route) CountsAsMatch() bool {
	return r.counts
}

// AllowsMethod reports whether the filter admits the given method.
// The method is expected in uppercase; Dispatch normalizes before
// asking.
func (r *Route) AllowsMethod(method string) bool {
	if len(r.methods) == 0 {
		return true
	}
	for _, m := range r.methods {
		if m == method {
			return true
		}
	}
	return false
}

// normalizeMethods folds the polymorphic method filter into its
// canonical form: nil for "any method", otherwise uppercased tokens.
// An empty string and an empty slice both mean "any method".
func normalizeMethods(method any) ([]string, error) {
	switch m := method.(type) {
	case nil:
		return nil, nil

	case string:
		if m == "" {
			return nil, nil
		}
		return []string{strings.ToUpper(m)}, nil

	case []string:
		if len(m) == 0 {
			return nil, nil
		}
		methods := make([]string, len(m))
		for i, token := range m {
			methods[i] = strings.ToUpper(token)
		}
		return methods, nil

	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidMethod, method)
	}
}

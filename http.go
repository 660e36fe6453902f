package klein

import (
	"net/http"
	"strings"

	"github.com/danidoble/klein/consts"
)

// ServeHTTP adapts the router to net/http. The request method and path
// dispatch exactly like Dispatch; handlers reach the live request and
// writer through ctx.Request() and ctx.Writer().
//
// When the pass finishes without a committed match (MatchedCount == 0):
// if some route's path matched but every such route rejected the
// method, the adapter answers 405 with an Allow header built from
// Outcome.MethodsAllowed, or runs the configured MethodNotAllowed
// handler; otherwise it answers 404, or runs the configured NotFound
// handler. Routes that executed without counting do not suppress this:
// opting out of the match counter opts out of the "request was
// handled" signal too.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if !isValidRequestMethod(req.Method) {
		http.Error(w, http.StatusText(consts.StatusBadRequest), consts.StatusBadRequest)
		return
	}

	ctx := newContext(req.Method, trimPath(req.URL.Path))
	ctx.req = req
	ctx.writer = w

	out, err := r.dispatch(ctx)
	if err != nil {
		r.errorHandler(ctx, err)
		return
	}

	if out.MatchedCount > 0 {
		return
	}

	if len(out.MethodsAllowed) > 0 {
		if r.notAllowed != nil {
			if err := r.notAllowed(ctx); err != nil {
				r.errorHandler(ctx, err)
			}
			return
		}
		w.Header().Set(consts.HeaderAllow, strings.Join(out.MethodsAllowed, ", "))
		http.Error(w, http.StatusText(consts.StatusMethodNotAllowed), consts.StatusMethodNotAllowed)
		return
	}

	if r.notFound != nil {
		if err := r.notFound(ctx); err != nil {
			r.errorHandler(ctx, err)
		}
		return
	}
	http.Error(w, http.StatusText(consts.StatusNotFound), consts.StatusNotFound)
}

// isValidRequestMethod returns true if the given string is a valid
// HTTP request method.
func isValidRequestMethod(method string) bool {
	switch method {
	case consts.MethodGet, consts.MethodHead, consts.MethodPost, consts.MethodPut,
		consts.MethodDelete, consts.MethodConnect, consts.MethodOptions, consts.MethodTrace, consts.MethodPatch:
		return true
	default:
		return false
	}
}

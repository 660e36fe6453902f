package klein

import "log"

// RequestInfo is a stock request logging handler. Register it ahead of
// everything else, usually as a non-counting catch-all:
//
//	r.Any("*", klein.RequestInfo, klein.RouteOpts{NoCount: true})
//
// Because every matching route runs, it logs the request and leaves the
// rest of the pass untouched.
func RequestInfo(ctx Context) error {
	log.Printf("%s %s", ctx.Method(), ctx.Path())
	return nil
}

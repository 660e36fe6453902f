package klein

// Outcome summarizes one dispatch pass.
//
// "No route matched" is data, not an error: a zero MatchedCount with a
// nil dispatch error is the normal way to observe it, and the caller
// decides whether that means a 404.
type Outcome struct {
	// MatchedCount counts the routes whose method and path both
	// passed and whose CountsAsMatch flag is set.
	MatchedCount int

	// Executed lists the routes whose handlers actually ran, in run
	// order. A NoCount route that ran appears here even though it
	// never touched MatchedCount.
	Executed []*Route

	// Stopped reports that a handler ended the pass early via
	// ctx.Stop().
	Stopped bool

	// MethodsAllowed collects the method filters of routes whose path
	// matched but whose method filter rejected the request, uppercase
	// and deduplicated in registration order. A 405 response can be
	// built directly from it.
	MethodsAllowed []string
}

// Matched reports whether any counting route matched.
func (o *Outcome) Matched() bool {
	return o.MatchedCount > 0
}

// allowMethods records a path-matched-but-method-rejected diagnostic.
func (o *Outcome) allowMethods(methods []string) {
	for _, method := range methods {
		if !contains(o.MethodsAllowed, method) {
			o.MethodsAllowed = append(o.MethodsAllowed, method)
		}
	}
}

func contains(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

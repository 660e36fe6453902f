package klein

// flow tells the dispatch loop what it should do next.
// The loop derives one of these from every handler invocation instead
// of mixing control flow into error values, so stopping a pass and
// failing a pass stay distinguishable.
type flow int

// Control flow values used while walking the route list.
const (
	// flowStop indicates the pass should end because a handler asked
	// for early termination via ctx.Stop()
	flowStop flow = iota

	// flowAbort indicates the pass should end because a handler
	// returned an error; the error propagates to the caller unmodified
	flowAbort

	// flowNext indicates evaluation should continue with the next
	// route in registration order
	flowNext
)

// nextFlow folds a handler's result into a control flow directive.
// An error outranks a stop request: a handler that both fails and
// stops is reported as a failure.
func nextFlow(err error, stopped bool) flow {
	if err != nil {
		return flowAbort
	}
	if stopped {
		return flowStop
	}
	return flowNext
}

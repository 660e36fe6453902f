package klein

import (
	"errors"

	"github.com/danidoble/klein/core/ptn"
)

// ErrBadPattern mirrors ptn.ErrBadPattern so callers of the
// registration API can errors.Is without importing core/ptn.
var ErrBadPattern = ptn.ErrBadPattern

var (
	// ErrInvalidHandler rejects a nil handler at route construction.
	ErrInvalidHandler = errors.New("route handler must be non-nil")

	// ErrInvalidMethod rejects a method filter that is neither nil,
	// a string, nor a []string.
	ErrInvalidMethod = errors.New("method filter must be nil, a string, or a []string")

	// ErrNilRoute rejects registering a nil route.
	ErrNilRoute = errors.New("cannot register a nil route")

	// ErrNoWriter reports a response helper used during a synthetic
	// dispatch, where no http.ResponseWriter is attached.
	ErrNoWriter = errors.New("context has no response writer")

	// ErrRouteNotFound reports a reverse lookup for a name no route
	// was registered under.
	ErrRouteNotFound = errors.New("no route registered under that name")
)

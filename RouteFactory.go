package klein

// RouteFactory builds routes, stamping the currently active namespace
// onto each pattern before compilation. The namespace is one mutable
// string, not a stack: nested scopes are the caller's save/restore
// responsibility, which With packages up.
type RouteFactory struct {
	namespace string
}

// NewRouteFactory returns a factory with no active namespace.
func NewRouteFactory() *RouteFactory {
	return &RouteFactory{}
}

// Build constructs a route from user input. The active namespace, if
// any, is concatenated onto pattern as a raw literal prefix before the
// pattern compiles; no slash normalization is applied, so "/api" +
// "users" yields "/apiusers" exactly as written.
//
// An empty pattern under an active namespace becomes the namespace
// umbrella "<namespace>/[*:*]?": it matches the bare namespace path,
// the trailing-slash form, and every path beneath it, capturing the
// remainder under "*".
func (f *RouteFactory) Build(handler Handler, pattern string, method any, opts ...RouteOpts) (*Route, error) {
	return NewRoute(handler, f.qualify(pattern), method, opts...)
}

// qualify applies the active namespace to a pattern.
func (f *RouteFactory) qualify(pattern string) string {
	if f.namespace == "" {
		return pattern
	}
	if pattern == "" || pattern == "*" {
		return f.namespace + "/[*:*]?"
	}
	return f.namespace + pattern
}

// SetNamespace replaces the active namespace.
func (f *RouteFactory) SetNamespace(namespace string) {
	f.namespace = namespace
}

// Namespace returns the active namespace.
func (f *RouteFactory) Namespace() string {
	return f.namespace
}

// AppendNamespace concatenates part onto the active namespace, again
// with no slash normalization.
func (f *RouteFactory) AppendNamespace(part string) {
	f.namespace += part
}

// With appends prefix to the active namespace for the duration of fn
// and restores the previous namespace afterwards, even when fn builds
// nested scopes of its own.
//
//	factory.With("/api", func(f *RouteFactory) {
//		f.With("/v1", func(f *RouteFactory) {
//			// namespace here is "/api/v1"
//		})
//		// namespace here is "/api" again
//	})
func (f *RouteFactory) With(prefix string, fn func(f *RouteFactory)) {
	saved := f.namespace
	f.namespace += prefix
	defer func() { f.namespace = saved }()
	fn(f)
}

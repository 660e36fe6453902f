package ptn

import "sort"

// Params is the parameter sink handlers read extracted path values from.
// One sink lives for one dispatch pass; every route that matches during
// the pass merges its captures in, and later captures overwrite earlier
// ones under the same name. That overwrite is the documented policy for
// multi-match dispatch, not an error.
//
// Example:
//
//	Route:  /user/[i:id]/posts/[i:postId]
//	Path:   /user/123/posts/456
//	Result: Params{"id": "123", "postId": "456"}
type Params map[string]string

// NewParams returns an empty, writable sink.
func NewParams() Params {
	return make(Params, 8)
}

// Get returns the value stored under key, or "" when absent.
func (p Params) Get(key string) string {
	return p[key]
}

// Has reports whether key holds a value.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Set stores value under key, replacing any previous value.
func (p Params) Set(key string, value string) {
	p[key] = value
}

// Merge copies every entry of other into p, overwriting on collision.
func (p Params) Merge(other Params) {
	for key, value := range other {
		p[key] = value
	}
}

// Replace drops all entries of p and copies other in.
func (p Params) Replace(other Params) {
	clear(p)
	p.Merge(other)
}

// Remove deletes the entry under key; absent keys are a no-op.
func (p Params) Remove(key string) {
	delete(p, key)
}

// Each calls fn for every entry in key order.
func (p Params) Each(fn func(key string, value string)) {
	for _, key := range p.Keys() {
		fn(key, p[key])
	}
}

// Keys returns the stored keys sorted for deterministic iteration.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored entries.
func (p Params) Len() int {
	return len(p)
}

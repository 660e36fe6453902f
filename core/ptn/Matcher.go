// Package ptn compiles declarative path patterns into reusable matchers.
//
// A pattern is a '/'-delimited path whose segments are literal text,
// placeholder tokens such as [i:id], or a terminal wildcard:
//
//	/users/[i:id]           digits captured as "id"
//	/posts/[:slug]?         optional default-class placeholder
//	/files/*                wildcard, remainder captured as "*"
//	/api/[*:rest]?          optional named wildcard
//
// Matchers are immutable once compiled and safe for concurrent use.
package ptn

import (
	"fmt"
	"strings"

	"github.com/danidoble/klein/consts"
)

// maxOptionals bounds the optional placeholders one pattern may carry.
// Match decisions for optionals are encoded in a 64-bit choice mask.
const maxOptionals = 64

// Matcher is the compiled, reusable form of a path pattern.
// It tests concrete request paths anchored at both ends and extracts
// named parameters on success. The zero value is not usable; obtain
// matchers from Compile.
type Matcher struct {
	pattern  string
	segments []segment
	catchAll bool
}

// Compile translates a pattern string into a Matcher.
//
// The empty pattern and "*" compile to the catch-all matcher, which
// matches every path and extracts nothing. Every other pattern must
// begin with '/'. Malformed placeholder tokens, stray brackets, a
// non-terminal wildcard and unknown type tags all fail with an error
// wrapping ErrBadPattern; nothing is partially compiled.
func Compile(pattern string) (*Matcher, error) {
	if pattern == "" || pattern == WildcardName {
		return &Matcher{pattern: pattern, catchAll: true}, nil
	}

	if pattern[0] != consts.RuneSlash {
		return nil, fmt.Errorf("%w: pattern %q must begin with '/'", ErrBadPattern, pattern)
	}

	raws := strings.Split(pattern[1:], "/")
	segments := make([]segment, 0, len(raws))
	optionals := 0

	for i, raw := range raws {
		seg, err := parseSegment(raw)
		if err != nil {
			return nil, err
		}

		if seg.kind == segWildcard && i != len(raws)-1 {
			return nil, fmt.Errorf("%w: wildcard must be the final segment in %q", ErrBadPattern, pattern)
		}

		if seg.optional {
			if optionals == maxOptionals {
				return nil, fmt.Errorf("%w: more than %d optional tokens in %q", ErrBadPattern, maxOptionals, pattern)
			}
			seg.optBit = optionals
			optionals++
		}

		segments = append(segments, seg)
	}

	return &Matcher{pattern: pattern, segments: segments}, nil
}

// MustCompile is Compile for patterns known to be valid, typically
// package-level route tables. It panics on a malformed pattern.
func MustCompile(pattern string) *Matcher {
	m, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Pattern returns the source string the matcher was compiled from.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// IsCatchAll reports whether the matcher matches every path.
func (m *Matcher) IsCatchAll() bool {
	return m.catchAll
}

// Match tests path against the full pattern.
// This is a convenience wrapper around MatchNoAlloc that collects
// captures into a Params map.
//
// The map is only allocated if the match actually captured something,
// so a successful paramless match returns (nil, true).
func (m *Matcher) Match(path string) (Params, bool) {
	var params Params

	ok := m.MatchNoAlloc(path, func(key string, value string) {
		if params == nil {
			params = make(Params, 4)
		}
		params[key] = value
	})

	return params, ok
}

// MatchNoAlloc tests path against the full pattern without allocating.
// Captures are passed to addParam in pattern order, and only once the
// whole path has matched; a failed match never invokes the callback.
// A nil addParam skips capture extraction, turning the call into a
// pure match test.
//
// The implementation runs in two phases:
//  1. decide: a backtracking walk over the segments settles whether
//     the path matches and which optional placeholders participated,
//     recorded as bits in a choice mask.
//  2. emit: on success, a second linear walk replays the decided
//     branch and reports the captures. Nothing is buffered, so
//     backtracking can never leak captures from abandoned branches.
func (m *Matcher) MatchNoAlloc(path string, addParam func(key string, value string)) bool {
	if m.catchAll {
		return true
	}

	choices, ok := m.decide(path, 0, 0)
	if !ok {
		return false
	}

	if addParam != nil {
		m.emit(path, choices, addParam)
	}
	return true
}

// decide matches segments[segIdx:] against path[pos:].
// pos always sits on the '/' that introduces the current segment.
// The returned mask holds one bit per optional segment, set when the
// optional participated in the match.
//
// Branching only happens at optional segments, greedily:
//
//	segment: [:slug]?
//	path:    /posts|/hello     present, slug="hello"
//	path:    /posts|/          trailing slash, no capture (final segment only)
//	path:    /posts|           absent
func (m *Matcher) decide(path string, segIdx int, pos int) (uint64, bool) {
	if segIdx == len(m.segments) {
		return 0, pos == len(path)
	}

	seg := &m.segments[segIdx]

	switch seg.kind {
	case segLiteral:
		// Example:
		//   segment: users
		//   path:    |/users/42 -> pos advances past "/users"
		end := pos + 1 + len(seg.literal)
		if pos >= len(path) || path[pos] != consts.RuneSlash ||
			end > len(path) || path[pos+1:end] != seg.literal {
			return 0, false
		}
		return m.decide(path, segIdx+1, end)

	case segToken:
		// Present branch: scan the longest run of class characters.
		// The run must be non-empty and must end the path segment.
		if pos < len(path) && path[pos] == consts.RuneSlash {
			end := scanClass(path, pos+1, seg.class)
			if end > pos+1 && (end == len(path) || path[end] == consts.RuneSlash) {
				if choices, ok := m.decide(path, segIdx+1, end); ok {
					if seg.optional {
						choices |= 1 << seg.optBit
					}
					return choices, true
				}
			}
		}

		if !seg.optional {
			return 0, false
		}

		// Trailing-slash branch: a final optional token also accepts
		// the present-but-empty form "/posts/".
		if segIdx == len(m.segments)-1 && pos == len(path)-1 && path[pos] == consts.RuneSlash {
			return 0, true
		}

		// Absent branch: the token and its preceding '/' are skipped.
		return m.decide(path, segIdx+1, pos)

	default: // segWildcard, compile guarantees it is final
		if pos < len(path) && path[pos] == consts.RuneSlash {
			if seg.optional {
				return 1 << seg.optBit, true
			}
			return 0, true
		}
		// [*]? also matches when the '/' and remainder are wholly absent.
		if seg.optional && pos == len(path) {
			return 0, true
		}
		return 0, false
	}
}

// emit replays the branch selected by choices and reports captures.
// The walk is linear: every scan here re-runs a scan decide already
// accepted, so positions cannot diverge from the decided branch.
func (m *Matcher) emit(path string, choices uint64, addParam func(key string, value string)) {
	pos := 0

	for i := range m.segments {
		seg := &m.segments[i]

		switch seg.kind {
		case segLiteral:
			pos += 1 + len(seg.literal)

		case segToken:
			if seg.optional && choices>>seg.optBit&1 == 0 {
				continue
			}
			end := scanClass(path, pos+1, seg.class)
			addParam(seg.name, path[pos+1:end])
			pos = end

		default: // segWildcard
			if seg.optional && choices>>seg.optBit&1 == 0 {
				return
			}
			addParam(seg.name, path[pos+1:])
			return
		}
	}
}

package ptn

import (
	"fmt"
	"strings"

	"github.com/danidoble/klein/consts"
)

// segKind discriminates the three segment forms a pattern can hold.
type segKind uint8

const (
	segLiteral  segKind = iota // verbatim text between slashes
	segToken                   // a [type:name] placeholder
	segWildcard                // trailing *, consumes the rest of the path
)

// tokenClass is the character class a placeholder accepts.
type tokenClass uint8

const (
	classAny  tokenClass = iota // one or more characters excluding '/'
	classInt                    // decimal digits
	classAlpha                  // ASCII letters
	classHex                    // hex digits
	classSlug                   // letters, digits, '-' and '_'
)

// typeTags maps the tag between '[' and ':' to its character class.
// The empty tag is the default class.
var typeTags = map[string]tokenClass{
	"":  classAny,
	"i": classInt,
	"a": classAlpha,
	"h": classHex,
	"s": classSlug,
}

// WildcardName is the capture key used by wildcards declared without
// their own name: bare '*' segments and '[*]' tokens.
const WildcardName = "*"

// segment is one '/'-delimited piece of a compiled pattern.
// A segment is wholly literal, wholly a placeholder, or the wildcard;
// mixing literal text and a token inside one segment is a compile error.
type segment struct {
	kind     segKind
	literal  string     // segLiteral only
	name     string     // capture key for tokens and wildcards
	class    tokenClass // segToken only
	optional bool       // the segment and its preceding '/' may be absent
	optBit   int        // bit index in the match-choice mask, optional segments only
}

// parseSegment turns one raw '/'-delimited piece into a segment.
//
// Accepted forms:
//
//	users          literal text
//	*              wildcard capturing under "*"
//	[:id]  [id]    default-class placeholder named id
//	[i:id]         digits-only placeholder
//	[a:word]?      optional letters-only placeholder
//	[*:rest]       named wildcard
//
// A trailing '?' marks tokens optional. Anything else containing '[' or
// ']' is malformed.
func parseSegment(raw string) (segment, error) {
	if raw == WildcardName {
		return segment{kind: segWildcard, name: WildcardName}, nil
	}

	if len(raw) == 0 || raw[0] != consts.RuneLBracket {
		if strings.ContainsAny(raw, "[]") {
			return segment{}, fmt.Errorf("%w: stray bracket in segment %q", ErrBadPattern, raw)
		}
		return segment{kind: segLiteral, literal: raw}, nil
	}

	optional := false
	if raw[len(raw)-1] == consts.RuneQuestion {
		optional = true
		raw = raw[:len(raw)-1]
	}

	end := strings.IndexByte(raw, consts.RuneRBracket)
	if end < 0 {
		return segment{}, fmt.Errorf("%w: unterminated token %q", ErrBadPattern, raw)
	}
	if end != len(raw)-1 {
		return segment{}, fmt.Errorf("%w: text after token %q", ErrBadPattern, raw)
	}

	inner := raw[1:end]
	tag, name, hasTag := "", inner, false
	if colon := strings.IndexByte(inner, consts.RuneColon); colon >= 0 {
		tag, name, hasTag = inner[:colon], inner[colon+1:], true
	}

	if strings.ContainsAny(name, ":[") {
		return segment{}, fmt.Errorf("%w: malformed token %q", ErrBadPattern, raw)
	}

	// [*] and [*:rest] are the wildcard in token spelling.
	// Without a tag, a bare [*] keeps the default capture key.
	if tag == WildcardName || (!hasTag && name == WildcardName) {
		if name == "" {
			return segment{}, fmt.Errorf("%w: empty name in token %q", ErrBadPattern, raw)
		}
		return segment{kind: segWildcard, name: name, optional: optional}, nil
	}

	if name == "" {
		return segment{}, fmt.Errorf("%w: empty name in token %q", ErrBadPattern, raw)
	}

	class, known := typeTags[tag]
	if !known {
		return segment{}, fmt.Errorf("%w: unknown type tag %q in token %q", ErrBadPattern, tag, raw)
	}

	return segment{kind: segToken, name: name, class: class, optional: optional}, nil
}

// scanClass returns the position after the longest run of class
// characters starting at start. The run may be empty.
func scanClass(path string, start int, class tokenClass) int {
	i := start
	for i < len(path) && inClass(path[i], class) {
		i++
	}
	return i
}

func inClass(c byte, class tokenClass) bool {
	switch class {
	case classInt:
		return c >= '0' && c <= '9'
	case classAlpha:
		return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
	case classHex:
		return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
	case classSlug:
		return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
			c == '-' || c == '_'
	default: // classAny
		return c != consts.RuneSlash
	}
}

package ptn

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/danidoble/klein/consts"
)

// BuildPath is the reverse of Match: it renders a concrete path from
// the pattern, filling placeholders from params.
//
// Literal segments are emitted verbatim. Placeholder values are
// path-escaped; they are not checked against the placeholder's
// character class, so a value that would not round-trip through Match
// is the caller's responsibility. Optional placeholders with no value
// (or an empty one) are omitted together with their slash. A wildcard
// fills from its capture name with slashes kept intact; a mandatory
// wildcard with no value renders as a bare trailing slash.
//
// A mandatory placeholder with no value fails with ErrMissingParam.
// The catch-all matcher builds "/".
func (m *Matcher) BuildPath(params map[string]string) (string, error) {
	if m.catchAll {
		return "/", nil
	}

	var b strings.Builder
	b.Grow(len(m.pattern))

	for i := range m.segments {
		seg := &m.segments[i]

		switch seg.kind {
		case segLiteral:
			b.WriteByte(consts.RuneSlash)
			b.WriteString(seg.literal)

		case segToken:
			value := params[seg.name]
			if value == "" {
				if seg.optional {
					continue
				}
				return "", fmt.Errorf("%w: %q in pattern %q", ErrMissingParam, seg.name, m.pattern)
			}
			b.WriteByte(consts.RuneSlash)
			b.WriteString(url.PathEscape(value))

		default: // segWildcard
			value := params[seg.name]
			if value == "" && seg.optional {
				continue
			}
			b.WriteByte(consts.RuneSlash)
			b.WriteString(value)
		}
	}

	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}

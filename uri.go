package klein

import (
	"strings"

	"github.com/danidoble/klein/consts"
)

// trimPath reduces a request target to the path the matchers test:
// the query string and fragment are cut and an empty target becomes
// "/". Trailing slashes are kept as-is; "/posts/" and "/posts" are
// different paths to the pattern grammar.
func trimPath(target string) string {
	if i := strings.IndexByte(target, consts.RuneQuestion); i >= 0 {
		target = target[:i]
	}
	if i := strings.IndexByte(target, consts.RuneHash); i >= 0 {
		target = target[:i]
	}
	if target == "" {
		return "/"
	}
	return target
}

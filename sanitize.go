package track404

import (
	"regexp"
	"strings"
)

// NumPlaceholder replaces every run of digits in a sanitized path.
const NumPlaceholder = "<num>"

var digits = regexp.MustCompile(`\p{Nd}+`)

// SanitizePath removes the query string from path and replaces each run of
// decimal digits (in any script, so "٣٤٥" as well as "345") with
// NumPlaceholder, so that requests differing only in IDs or parameters count as
// the same path:
//
//	/users/1234/edit?tab=2  ->  /users/<num>/edit
//
// Nothing else about the path is changed. SanitizePath is idempotent.
func SanitizePath(path string) string {
	path, _, _ = strings.Cut(path, "?")
	return digits.ReplaceAllLiteralString(path, NumPlaceholder)
}

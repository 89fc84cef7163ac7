package utils

import "strings"

// StripTrailingSeparator removes a single trailing '/' or '\' from s.
func StripTrailingSeparator(s string) string {
	if strings.HasSuffix(s, "/") || strings.HasSuffix(s, "\\") {
		return s[:len(s)-1]
	}
	return s
}

// StripLeadingSeparator removes a single leading '/' or '\' from s.
func StripLeadingSeparator(s string) string {
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "\\") {
		return s[1:]
	}
	return s
}

// JoinPath joins base and name with exactly one '/' at the boundary,
// trimming one redundant separator on each side of the join.
func JoinPath(base, name string) string {
	return StripTrailingSeparator(base) + "/" + StripLeadingSeparator(name)
}

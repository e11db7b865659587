package reroute

import (
	"strings"
)

func validatePath(path string) {
	switch {
	case len(path) == 0 || !strings.HasPrefix(path, "/"):
		panic("path must begin with '/' in path '" + path + "'")
	}
}

// canonicalMethod lowercases a verb so GET, get and Get index the same
// tables. MethodWild is already canonical.
func canonicalMethod(method string) string {
	return strings.ToLower(method)
}

package vos

import "strings"

// HomeMarker is the path prefix that refers to the home directory.
const HomeMarker = "~"

// ExpandHome resolves the home marker in path.
//
// An empty path resolves to home. A path starting with the marker has the
// marker replaced by home; no separator is added, so "~x" becomes home+"x".
// Any other path is returned unchanged. Existence is not checked.
func ExpandHome(path, home string) string {
	switch {
	case path == "":
		return home
	case strings.HasPrefix(path, HomeMarker):
		return home + strings.TrimPrefix(path, HomeMarker)
	default:
		return path
	}
}

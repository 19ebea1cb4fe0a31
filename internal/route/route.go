package route

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Prefix is the namespace all the HTTP route keys live in.
	Prefix = "HTTP"
	// Separator replaces slashes. It's not a legal character in the route namespace
	// otherwise, so a key can't collide with anything but another path.
	Separator = '`'
	// Index is the route name of the bare root path.
	Index = "INDEX"
)

// Key converts the path part of a request target into the route key handlers are
// bound to, e.g. "/news/today/" becomes "HTTP`NEWS`TODAY".
func Key(path string) string {
	return Prefix + string(Separator) + Normalize(path)
}

// Normalize strips the leading slashes (the bare root becomes Index), then the trailing
// ones, swaps the remaining slashes for Separator and upper-cases the result.
func Normalize(path string) string {
	path = strings.TrimLeft(path, "/")
	if len(path) == 0 {
		return Index
	}

	path = strings.TrimRight(path, "/")
	path = strings.ReplaceAll(path, "/", string(Separator))

	// Caser keeps state, so it can't be shared between connections
	return cases.Upper(language.Und).String(path)
}

// Trim strips the leading and trailing slashes and keeps everything else as is.
func Trim(path string) string {
	return strings.Trim(path, "/")
}

package mime

import "strings"

type MIME = string

const (
	Plain MIME = "text/plain"
	HTML  MIME = "text/html"
	JSON  MIME = "application/json"
)

// IsHTML reports whether a Content-Type value denotes an HTML document. Parameters
// like charset are allowed.
func IsHTML(contentType string) bool {
	return strings.Contains(contentType, HTML)
}

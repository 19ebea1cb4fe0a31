package method

import "strings"

type Method uint8

const (
	Unknown Method = iota
	GET
	POST
	PUT
	PATCH
	DELETE

	// Count is the last one enum, so contains the greatest integer value of all the
	// methods. So real number of methods is lower by 1
	Count = iota - 1
)

// labels are also the prefixes a request line is matched against, so the trailing
// space is significant: "GETS /" is not a GET request.
var labels = [...]string{
	Unknown: "UNKNOWN ",
	GET:     "GET ",
	POST:    "POST ",
	PUT:     "PUT ",
	PATCH:   "PATCH ",
	DELETE:  "DELETE ",
}

// List contains all the supported HTTP methods in the order they are matched.
var List = []Method{GET, POST, PUT, PATCH, DELETE}

// Parse matches the beginning of the line against the known methods. The first
// match wins, no match results in Unknown.
func Parse(line string) Method {
	for _, m := range List {
		if strings.HasPrefix(line, labels[m]) {
			return m
		}
	}

	return Unknown
}

// IsRequest reports whether the line looks like the first line of an HTTP request.
// The line-command dispatcher uses it to divert a connection.
func IsRequest(line string) bool {
	return Parse(line) != Unknown
}

// String returns the method label as handed to request handlers, including the
// trailing space.
func (m Method) String() string {
	if int(m) >= len(labels) {
		return labels[Unknown]
	}

	return labels[m]
}

// Package request models the fully-parsed inbound request the transport
// layer hands to the dispatch pipeline: metadata that may be read many
// times, and a body that is consumed at most once.
package request

import (
	"io"
	"net/http"
)

// Param is a single captured path parameter.
type Param struct {
	Name  string
	Value string
}

// Params is the ordered list of parameters captured by a path match.
type Params []Param

// Get returns the value of the first parameter with the given name.
func (ps Params) Get(name string) (string, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Parts is the non-consuming view of a request: everything an extractor
// may read without touching the body.
type Parts struct {
	Method string
	Path   string
	Header http.Header
	Params Params
}

// Request is a parsed inbound request. Parts may be read repeatedly;
// Body is a single-use stream drained by at most one extractor.
type Request struct {
	Parts Parts
	Body  io.Reader
}

// New constructs a request from its components. A nil header is
// replaced with an empty one.
func New(method, path string, header http.Header, body io.Reader) *Request {
	if header == nil {
		header = http.Header{}
	}
	return &Request{
		Parts: Parts{Method: method, Path: path, Header: header},
		Body:  body,
	}
}

// FromHTTP adapts a standard library request. The body stream is shared,
// not copied: reading it through the returned request drains the original.
func FromHTTP(r *http.Request) *Request {
	return New(r.Method, r.URL.Path, r.Header, r.Body)
}

package response

import (
	"fmt"
	"net/http"
)

// Response is the canonical representation every dispatch produces:
// a status code, headers, and a fully materialized body.
// Values are treated as immutable once constructed.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Write renders the response to the given http.ResponseWriter.
// A zero status code is written as 200 OK.
func (r Response) Write(w http.ResponseWriter) error {
	for key, values := range r.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}

	status := r.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if len(r.Body) > 0 {
		if _, err := w.Write(r.Body); err != nil {
			return fmt.Errorf("write response body: %w", err)
		}
	}
	return nil
}

// Parts holds the status and headers of a response under construction.
// Part contributors mutate it during composite conversion, see [With].
type Parts struct {
	StatusCode int
	Header     http.Header
}

// IntoResponse is implemented by values convertible to a complete response.
type IntoResponse interface {
	IntoResponse() Response
}

// IntoResponseParts is implemented by values that contribute status or
// headers to a response built from another value.
type IntoResponseParts interface {
	IntoResponseParts(p *Parts) error
}

// Status is an HTTP status code usable both as a standalone response
// (empty body) and as a part contributor that overwrites the status.
type Status int

// IntoResponse returns an empty-body response with this status.
func (s Status) IntoResponse() Response {
	return Response{StatusCode: int(s), Header: http.Header{}}
}

// IntoResponseParts overwrites the status of the response under construction.
func (s Status) IntoResponseParts(p *Parts) error {
	p.StatusCode = int(s)
	return nil
}

// Headers is a part contributor that merges header values into the
// response under construction, preserving already-set values.
type Headers http.Header

func (h Headers) IntoResponseParts(p *Parts) error {
	for key, values := range h {
		for _, value := range values {
			p.Header.Add(key, value)
		}
	}
	return nil
}

// From converts an arbitrary value into a Response.
//
// Conversion rules, in order:
//   - nil: 200 OK with an empty body
//   - Response: returned unchanged
//   - IntoResponse: the value's own conversion
//   - string: 200 OK, text/plain;charset=utf-8
//   - []byte: 200 OK, application/octet-stream
//   - error: 500 Internal Server Error with the standard status text
//   - anything else: 500 with a fixed diagnostic body
func From(v any) Response {
	switch v := v.(type) {
	case nil:
		return Response{StatusCode: http.StatusOK, Header: http.Header{}}
	case Response:
		return v
	case IntoResponse:
		return v.IntoResponse()
	case string:
		return text(http.StatusOK, v)
	case []byte:
		h := http.Header{}
		h.Set("Content-Type", "application/octet-stream")
		return Response{StatusCode: http.StatusOK, Header: h, Body: v}
	case error:
		return text(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	default:
		return text(http.StatusInternalServerError, "unsupported response type")
	}
}

// With builds a composite response. The last value is the body contributor,
// converted via [From]; all preceding values must implement
// [IntoResponseParts] and are applied left to right to the status and
// headers of the body contributor's response. A failing part contributor
// short-circuits composition and its failure value is converted instead.
func With(vals ...any) Response {
	if len(vals) == 0 {
		return From(nil)
	}

	res := From(vals[len(vals)-1])
	parts := Parts{StatusCode: res.StatusCode, Header: res.Header}
	if parts.Header == nil {
		parts.Header = http.Header{}
	}

	for _, v := range vals[:len(vals)-1] {
		contributor, ok := v.(IntoResponseParts)
		if !ok {
			return text(http.StatusInternalServerError, "unsupported response part type")
		}
		if err := contributor.IntoResponseParts(&parts); err != nil {
			return From(err)
		}
	}

	return Response{StatusCode: parts.StatusCode, Header: parts.Header, Body: res.Body}
}

func text(status int, body string) Response {
	h := http.Header{}
	h.Set("Content-Type", "text/plain;charset=utf-8")
	return Response{StatusCode: status, Header: h, Body: []byte(body)}
}

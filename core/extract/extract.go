package extract

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/dmitrymomot/spike/core/request"
	"github.com/dmitrymomot/spike/core/response"
)

// ErrInvalidUTF8 is returned when a text extractor receives a body that
// is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("request body is not valid utf-8")

// BodyError wraps a failure to read or decode the request body.
// Its response conversion is a fixed 500 diagnostic, so extraction
// failures surface as well-formed responses without handler involvement.
type BodyError struct {
	Err error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("read request body: %v", e.Err)
}

func (e *BodyError) Unwrap() error {
	return e.Err
}

// IntoResponse converts the failure into the diagnostic response sent
// to the client.
func (e *BodyError) IntoResponse() response.Response {
	return response.With(
		response.Status(http.StatusInternalServerError),
		"error reading body",
	)
}

// Method extracts the request method. Infallible.
type Method string

func (m *Method) FromRequestParts(p *request.Parts) error {
	*m = Method(p.Method)
	return nil
}

func (m *Method) FromRequest(r *request.Request) error {
	return m.FromRequestParts(&r.Parts)
}

// Path extracts the request path. Infallible.
type Path string

func (p *Path) FromRequestParts(parts *request.Parts) error {
	*p = Path(parts.Path)
	return nil
}

func (p *Path) FromRequest(r *request.Request) error {
	return p.FromRequestParts(&r.Parts)
}

// Headers extracts a copy of the request headers. Infallible.
type Headers http.Header

func (h *Headers) FromRequestParts(p *request.Parts) error {
	*h = Headers(p.Header.Clone())
	return nil
}

func (h *Headers) FromRequest(r *request.Request) error {
	return h.FromRequestParts(&r.Parts)
}

// Get returns the first header value for the given key.
func (h Headers) Get(key string) string {
	return http.Header(h).Get(key)
}

// Params extracts the path parameters captured by the route match,
// in capture order. Infallible.
type Params request.Params

func (ps *Params) FromRequestParts(p *request.Parts) error {
	*ps = Params(p.Params)
	return nil
}

func (ps *Params) FromRequest(r *request.Request) error {
	return ps.FromRequestParts(&r.Parts)
}

// Get returns the value of the named path parameter.
func (ps Params) Get(name string) (string, bool) {
	return request.Params(ps).Get(name)
}

// Text consumes the request body and decodes it as UTF-8.
// Fails with a [*BodyError] on read errors or invalid encoding.
type Text string

func (t *Text) FromRequest(r *request.Request) error {
	b, err := readBody(r)
	if err != nil {
		return err
	}
	if !utf8.Valid(b) {
		return &BodyError{Err: ErrInvalidUTF8}
	}
	*t = Text(b)
	return nil
}

// Bytes consumes the request body as raw bytes.
// Fails with a [*BodyError] on read errors.
type Bytes []byte

func (b *Bytes) FromRequest(r *request.Request) error {
	raw, err := readBody(r)
	if err != nil {
		return err
	}
	*b = Bytes(raw)
	return nil
}

func readBody(r *request.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, &BodyError{Err: err}
	}
	return b, nil
}

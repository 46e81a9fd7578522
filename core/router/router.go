package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"

	"github.com/google/uuid"

	"github.com/dmitrymomot/spike/core/handler"
	"github.com/dmitrymomot/spike/core/logger"
	"github.com/dmitrymomot/spike/core/request"
	"github.com/dmitrymomot/spike/core/response"
)

// Router is the registration builder. Routes are added during startup and
// sealed by Build; the resulting [Mux] is immutable and safe for
// concurrent dispatch.
//
// Registration errors (duplicate method slots, invalid patterns) are
// sticky: the first one is recorded and surfaces from Build with the
// offending method and pattern in the message.
type Router struct {
	patterns map[string]*MethodRouter
	order    []string
	logger   *slog.Logger
	err      error
}

// Option configures a Router during creation.
type Option func(*Router)

// WithLogger sets the logger used by the built Mux for dispatch logging.
func WithLogger(log *slog.Logger) Option {
	return func(r *Router) {
		if log != nil {
			r.logger = log
		}
	}
}

// New creates an empty route builder.
func New(opts ...Option) *Router {
	r := &Router{
		patterns: make(map[string]*MethodRouter),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route registers a MethodRouter under the given pattern. If the pattern
// is already registered the two are merged; a method slot defined on both
// sides is a configuration error.
func (r *Router) Route(pattern string, mr *MethodRouter) *Router {
	if r.err != nil {
		return r
	}
	if mr == nil {
		r.err = fmt.Errorf("%w for %q", ErrNilMethodRouter, pattern)
		return r
	}
	if mr.err != nil {
		r.err = fmt.Errorf("route %q: %w", pattern, mr.err)
		return r
	}
	if pattern == "" || pattern[0] != '/' {
		r.err = fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		return r
	}

	existing, ok := r.patterns[pattern]
	if !ok {
		r.patterns[pattern] = mr.clone()
		r.order = append(r.order, pattern)
		return r
	}
	if err := existing.merge(mr); err != nil {
		r.err = fmt.Errorf("route %q: %w", pattern, err)
	}
	return r
}

// Handle registers a single handler serving every method on the pattern.
func (r *Router) Handle(pattern string, h handler.Handler) *Router {
	return r.Route(pattern, Any(h))
}

// Err returns the first registration error recorded so far.
func (r *Router) Err() error {
	return r.err
}

// Build seals registration and returns the immutable dispatcher. It fails
// with the first recorded configuration error, or with a pattern conflict
// detected while populating the matching trie.
func (r *Router) Build() (*Mux, error) {
	if r.err != nil {
		return nil, r.err
	}

	t := newTree[*MethodRouter]()
	for _, pattern := range r.order {
		if err := t.insert(pattern, r.patterns[pattern]); err != nil {
			return nil, err
		}
	}

	return &Mux{tree: t, logger: r.logger}, nil
}

// Mux is the sealed dispatcher. It owns the matching trie and all method
// routers, never mutates them, and may serve arbitrarily many concurrent
// requests.
type Mux struct {
	tree   *tree[*MethodRouter]
	logger *slog.Logger
}

// Dispatch resolves the request path, attaches captured parameters, and
// performs method dispatch. Every outcome is a well-formed response:
// unmatched paths yield 404, matched paths without the method yield 405.
func (m *Mux) Dispatch(req *request.Request) response.Response {
	mr, params, ok := m.tree.match(req.Parts.Path)
	if !ok {
		m.logger.Debug("no route matched",
			slog.String("method", req.Parts.Method),
			slog.String("path", req.Parts.Path),
		)
		return response.From(response.Status(http.StatusNotFound))
	}

	req.Parts.Params = params
	return mr.dispatch(req)
}

// ServeHTTP adapts the dispatcher to the standard transport. Each response
// is stamped with an X-Request-Id header for correlation.
func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()

	res := m.Dispatch(request.FromHTTP(r))
	if res.Header == nil {
		res.Header = http.Header{}
	}
	res.Header.Set("X-Request-Id", id)

	if err := res.Write(w); err != nil {
		m.logger.Error("write response",
			logger.Error(err),
			slog.String("request_id", id),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}
}

// Patterns returns the registered path patterns in sorted order, for
// debugging and route introspection.
func (m *Mux) Patterns() []string {
	out := m.tree.patterns()
	sort.Strings(out)
	return out
}

package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/spike/core/handler"
	"github.com/dmitrymomot/spike/core/request"
	"github.com/dmitrymomot/spike/core/response"
)

// methodOrder fixes the iteration order for the nine method slots.
var methodOrder = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
	http.MethodTrace,
	http.MethodConnect,
}

var validMethods = func() map[string]struct{} {
	m := make(map[string]struct{}, len(methodOrder))
	for _, method := range methodOrder {
		m[method] = struct{}{}
	}
	return m
}()

// MethodRouter bundles, for a single path pattern, one handler per HTTP
// method plus an optional fallback used when no exact method matches.
//
// A slot, once set, cannot be overwritten: a second registration for the
// same method (or a second fallback) records a configuration error that
// surfaces from [Router.Build].
type MethodRouter struct {
	routes   map[string]handler.Handler
	fallback handler.Handler
	err      error
}

func newMethodRouter() *MethodRouter {
	return &MethodRouter{routes: make(map[string]handler.Handler, 2)}
}

// Get returns a MethodRouter with the GET slot set.
func Get(h handler.Handler) *MethodRouter { return newMethodRouter().Get(h) }

// Post returns a MethodRouter with the POST slot set.
func Post(h handler.Handler) *MethodRouter { return newMethodRouter().Post(h) }

// Put returns a MethodRouter with the PUT slot set.
func Put(h handler.Handler) *MethodRouter { return newMethodRouter().Put(h) }

// Patch returns a MethodRouter with the PATCH slot set.
func Patch(h handler.Handler) *MethodRouter { return newMethodRouter().Patch(h) }

// Delete returns a MethodRouter with the DELETE slot set.
func Delete(h handler.Handler) *MethodRouter { return newMethodRouter().Delete(h) }

// Head returns a MethodRouter with the HEAD slot set.
func Head(h handler.Handler) *MethodRouter { return newMethodRouter().Head(h) }

// Options returns a MethodRouter with the OPTIONS slot set.
func Options(h handler.Handler) *MethodRouter { return newMethodRouter().Options(h) }

// Trace returns a MethodRouter with the TRACE slot set.
func Trace(h handler.Handler) *MethodRouter { return newMethodRouter().Trace(h) }

// Connect returns a MethodRouter with the CONNECT slot set.
func Connect(h handler.Handler) *MethodRouter { return newMethodRouter().Connect(h) }

// Any returns a MethodRouter with the fallback slot set.
func Any(h handler.Handler) *MethodRouter { return newMethodRouter().Any(h) }

func (mr *MethodRouter) Get(h handler.Handler) *MethodRouter {
	return mr.set(http.MethodGet, h)
}

func (mr *MethodRouter) Post(h handler.Handler) *MethodRouter {
	return mr.set(http.MethodPost, h)
}

func (mr *MethodRouter) Put(h handler.Handler) *MethodRouter {
	return mr.set(http.MethodPut, h)
}

func (mr *MethodRouter) Patch(h handler.Handler) *MethodRouter {
	return mr.set(http.MethodPatch, h)
}

func (mr *MethodRouter) Delete(h handler.Handler) *MethodRouter {
	return mr.set(http.MethodDelete, h)
}

func (mr *MethodRouter) Head(h handler.Handler) *MethodRouter {
	return mr.set(http.MethodHead, h)
}

func (mr *MethodRouter) Options(h handler.Handler) *MethodRouter {
	return mr.set(http.MethodOptions, h)
}

func (mr *MethodRouter) Trace(h handler.Handler) *MethodRouter {
	return mr.set(http.MethodTrace, h)
}

func (mr *MethodRouter) Connect(h handler.Handler) *MethodRouter {
	return mr.set(http.MethodConnect, h)
}

// Method sets the slot for an arbitrary method name. Unknown methods are
// a configuration error.
func (mr *MethodRouter) Method(method string, h handler.Handler) *MethodRouter {
	method = strings.ToUpper(method)
	if _, ok := validMethods[method]; !ok {
		if mr.err == nil {
			mr.err = fmt.Errorf("%w: %s", ErrInvalidMethod, method)
		}
		return mr
	}
	return mr.set(method, h)
}

// Any sets the fallback slot, invoked when no exact method matches.
func (mr *MethodRouter) Any(h handler.Handler) *MethodRouter {
	if mr.err != nil {
		return mr
	}
	if h == nil {
		mr.err = fmt.Errorf("%w for fallback", ErrNilHandler)
		return mr
	}
	if mr.fallback != nil {
		mr.err = ErrFallbackConflict
		return mr
	}
	mr.fallback = h
	return mr
}

func (mr *MethodRouter) set(method string, h handler.Handler) *MethodRouter {
	if mr.err != nil {
		return mr
	}
	if h == nil {
		mr.err = fmt.Errorf("%w for %s", ErrNilHandler, method)
		return mr
	}
	if _, dup := mr.routes[method]; dup {
		mr.err = fmt.Errorf("%w: %s", ErrMethodConflict, method)
		return mr
	}
	mr.routes[method] = h
	return mr
}

// merge adopts every slot the incoming router defines and the receiver
// does not. A slot defined on both sides is a configuration error naming
// the method; merging never silently picks a side.
func (mr *MethodRouter) merge(in *MethodRouter) error {
	if in.err != nil {
		return in.err
	}
	for _, method := range methodOrder {
		h, ok := in.routes[method]
		if !ok {
			continue
		}
		if _, dup := mr.routes[method]; dup {
			return fmt.Errorf("%w: %s", ErrMethodConflict, method)
		}
		mr.routes[method] = h
	}
	if in.fallback != nil {
		if mr.fallback != nil {
			return ErrFallbackConflict
		}
		mr.fallback = in.fallback
	}
	return nil
}

// clone returns an independent copy so a MethodRouter value handed to
// Route cannot be mutated into the router afterwards.
func (mr *MethodRouter) clone() *MethodRouter {
	c := newMethodRouter()
	for method, h := range mr.routes {
		c.routes[method] = h
	}
	c.fallback = mr.fallback
	c.err = mr.err
	return c
}

// allowed lists the registered methods in fixed order, for the Allow header.
func (mr *MethodRouter) allowed() []string {
	out := make([]string, 0, len(mr.routes))
	for _, method := range methodOrder {
		if _, ok := mr.routes[method]; ok {
			out = append(out, method)
		}
	}
	return out
}

// dispatch selects the slot matching the request method, falls back to
// the fallback slot, and produces 405 with an Allow header when neither
// is present.
func (mr *MethodRouter) dispatch(req *request.Request) response.Response {
	if h, ok := mr.routes[req.Parts.Method]; ok {
		return h.Handle(req)
	}
	if mr.fallback != nil {
		return mr.fallback.Handle(req)
	}

	res := response.From(response.Status(http.StatusMethodNotAllowed))
	if allowed := mr.allowed(); len(allowed) > 0 {
		res.Header.Set("Allow", strings.Join(allowed, ", "))
	}
	return res
}

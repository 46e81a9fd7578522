package router_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/spike/core/extract"
	"github.com/dmitrymomot/spike/core/handler"
	"github.com/dmitrymomot/spike/core/request"
	"github.com/dmitrymomot/spike/core/response"
	"github.com/dmitrymomot/spike/core/router"
)

func text(s string) handler.Handler {
	return handler.Func0(func() string { return s })
}

func newRequest(method, path, body string) *request.Request {
	return request.New(method, path, nil, strings.NewReader(body))
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	t.Run("routes by path and method", func(t *testing.T) {
		t.Parallel()

		mux, err := router.New().
			Route("/a", router.Get(text("get a"))).
			Route("/b", router.Get(text("get b")).Post(text("post b"))).
			Build()
		require.NoError(t, err)

		res := mux.Dispatch(newRequest(http.MethodGet, "/a", ""))
		assert.Equal(t, "get a", string(res.Body))

		res = mux.Dispatch(newRequest(http.MethodPost, "/b", ""))
		assert.Equal(t, "post b", string(res.Body))
	})

	t.Run("unmatched path yields 404", func(t *testing.T) {
		t.Parallel()

		mux, err := router.New().Route("/x", router.Get(text("x"))).Build()
		require.NoError(t, err)

		res := mux.Dispatch(newRequest(http.MethodGet, "/y", ""))
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("missing method yields 405 with Allow header", func(t *testing.T) {
		t.Parallel()

		mux, err := router.New().
			Route("/x", router.Get(text("g")).Post(text("p"))).
			Build()
		require.NoError(t, err)

		res := mux.Dispatch(newRequest(http.MethodPut, "/x", ""))
		assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
		assert.Equal(t, "GET, POST", res.Header.Get("Allow"))
	})

	t.Run("fallback serves unmatched methods", func(t *testing.T) {
		t.Parallel()

		mux, err := router.New().
			Route("/x", router.Get(text("get")).Any(text("any"))).
			Build()
		require.NoError(t, err)

		res := mux.Dispatch(newRequest(http.MethodDelete, "/x", ""))
		assert.Equal(t, "any", string(res.Body))

		// The exact method slot still wins over the fallback.
		res = mux.Dispatch(newRequest(http.MethodGet, "/x", ""))
		assert.Equal(t, "get", string(res.Body))
	})

	t.Run("Handle serves every method", func(t *testing.T) {
		t.Parallel()

		mux, err := router.New().Handle("/any", text("always")).Build()
		require.NoError(t, err)

		for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodTrace} {
			res := mux.Dispatch(newRequest(method, "/any", ""))
			assert.Equal(t, "always", string(res.Body), method)
		}
	})

	t.Run("captured params reach the handler in order", func(t *testing.T) {
		t.Parallel()

		h := handler.Func1(func(ps extract.Params) string {
			var parts []string
			for _, p := range ps {
				parts = append(parts, p.Name+"="+p.Value)
			}
			return strings.Join(parts, ",")
		})

		mux, err := router.New().
			Route("/users/{id}/posts/{postID}", router.Get(h)).
			Build()
		require.NoError(t, err)

		res := mux.Dispatch(newRequest(http.MethodGet, "/users/7/posts/42", ""))
		assert.Equal(t, "id=7,postID=42", string(res.Body))
	})

	t.Run("typed handler receives method and body", func(t *testing.T) {
		t.Parallel()

		h := handler.Func2(func(m extract.Method, body extract.Text) response.Response {
			return response.With(response.Status(http.StatusCreated),
				fmt.Sprintf("%s - %s", m, body))
		})

		mux, err := router.New().Route("/hello", router.Put(h)).Build()
		require.NoError(t, err)

		res := mux.Dispatch(newRequest(http.MethodPut, "/hello", "hi"))
		assert.Equal(t, http.StatusCreated, res.StatusCode)
		assert.Equal(t, "PUT - hi", string(res.Body))
	})

	t.Run("root pattern matches root path", func(t *testing.T) {
		t.Parallel()

		mux, err := router.New().Route("/", router.Get(text("root"))).Build()
		require.NoError(t, err)

		res := mux.Dispatch(newRequest(http.MethodGet, "/", ""))
		assert.Equal(t, "root", string(res.Body))
	})

	t.Run("static segments win over captures", func(t *testing.T) {
		t.Parallel()

		mux, err := router.New().
			Route("/users/me", router.Get(text("me"))).
			Route("/users/{id}", router.Get(text("by id"))).
			Build()
		require.NoError(t, err)

		res := mux.Dispatch(newRequest(http.MethodGet, "/users/me", ""))
		assert.Equal(t, "me", string(res.Body))

		res = mux.Dispatch(newRequest(http.MethodGet, "/users/7", ""))
		assert.Equal(t, "by id", string(res.Body))
	})

	t.Run("wildcard absorbs the remainder", func(t *testing.T) {
		t.Parallel()

		h := handler.Func1(func(ps extract.Params) string {
			rest, _ := ps.Get("*")
			return rest
		})

		mux, err := router.New().Route("/files/*", router.Get(h)).Build()
		require.NoError(t, err)

		res := mux.Dispatch(newRequest(http.MethodGet, "/files/a/b/c.txt", ""))
		assert.Equal(t, "a/b/c.txt", string(res.Body))
	})
}

func TestConfigurationErrors(t *testing.T) {
	t.Parallel()

	t.Run("duplicate method across Route calls", func(t *testing.T) {
		t.Parallel()

		_, err := router.New().
			Route("/x", router.Get(text("one"))).
			Route("/x", router.Get(text("two"))).
			Build()

		require.ErrorIs(t, err, router.ErrMethodConflict)
		assert.Contains(t, err.Error(), "GET")
		assert.Contains(t, err.Error(), "/x")
	})

	t.Run("duplicate method in a chain", func(t *testing.T) {
		t.Parallel()

		_, err := router.New().
			Route("/x", router.Get(text("one")).Get(text("two"))).
			Build()

		require.ErrorIs(t, err, router.ErrMethodConflict)
	})

	t.Run("duplicate fallback", func(t *testing.T) {
		t.Parallel()

		_, err := router.New().
			Route("/x", router.Get(text("g")).Any(text("a"))).
			Route("/x", router.Any(text("b"))).
			Build()

		require.ErrorIs(t, err, router.ErrFallbackConflict)
	})

	t.Run("merge adopts disjoint slots", func(t *testing.T) {
		t.Parallel()

		mux, err := router.New().
			Route("/x", router.Get(text("get"))).
			Route("/x", router.Post(text("post"))).
			Build()
		require.NoError(t, err)

		assert.Equal(t, "get", string(mux.Dispatch(newRequest(http.MethodGet, "/x", "")).Body))
		assert.Equal(t, "post", string(mux.Dispatch(newRequest(http.MethodPost, "/x", "")).Body))
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()

		_, err := router.New().Route("no-slash", router.Get(text("x"))).Build()
		require.ErrorIs(t, err, router.ErrInvalidPattern)
	})

	t.Run("nil handler", func(t *testing.T) {
		t.Parallel()

		_, err := router.New().Route("/x", router.Get(nil)).Build()
		require.ErrorIs(t, err, router.ErrNilHandler)
	})

	t.Run("invalid method name", func(t *testing.T) {
		t.Parallel()

		mr := router.Get(text("x")).Method("BREW", text("y"))
		_, err := router.New().Route("/x", mr).Build()
		require.ErrorIs(t, err, router.ErrInvalidMethod)
	})

	t.Run("conflicting captures at the same position", func(t *testing.T) {
		t.Parallel()

		_, err := router.New().
			Route("/users/{id}", router.Get(text("a"))).
			Route("/users/{name}", router.Post(text("b"))).
			Build()
		require.ErrorIs(t, err, router.ErrDuplicatePattern)
	})

	t.Run("wildcard not last", func(t *testing.T) {
		t.Parallel()

		_, err := router.New().Route("/a/*/b", router.Get(text("x"))).Build()
		require.ErrorIs(t, err, router.ErrWildcardPosition)
	})

	t.Run("first error is sticky", func(t *testing.T) {
		t.Parallel()

		r := router.New().
			Route("/x", router.Get(text("one"))).
			Route("/x", router.Get(text("two"))).
			Route("/y", router.Get(text("fine")))

		require.ErrorIs(t, r.Err(), router.ErrMethodConflict)
		_, err := r.Build()
		require.ErrorIs(t, err, router.ErrMethodConflict)
	})
}

func TestServeHTTP(t *testing.T) {
	t.Parallel()

	t.Run("writes the dispatched response", func(t *testing.T) {
		t.Parallel()

		h := handler.Func2(func(m extract.Method, body extract.Text) response.Response {
			return response.With(response.Status(http.StatusCreated), string(body))
		})
		mux, err := router.New().Route("/echo", router.Post(h)).Build()
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("payload"))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "payload", w.Body.String())
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	})

	t.Run("404 over the wire", func(t *testing.T) {
		t.Parallel()

		mux, err := router.New().Route("/x", router.Get(text("x"))).Build()
		require.NoError(t, err)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestConcurrentDispatch(t *testing.T) {
	t.Parallel()

	echo := handler.Func2(func(m extract.Method, body extract.Text) string {
		return string(m) + ":" + string(body)
	})
	byID := handler.Func1(func(ps extract.Params) string {
		id, _ := ps.Get("id")
		return "user " + id
	})

	mux, err := router.New().
		Route("/echo", router.Post(echo)).
		Route("/users/{id}", router.Get(byID)).
		Build()
	require.NoError(t, err)

	const n = 100
	var wg sync.WaitGroup
	results := make([]string, n)

	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				res := mux.Dispatch(newRequest(http.MethodPost, "/echo", fmt.Sprintf("m%d", i)))
				results[i] = string(res.Body)
			} else {
				res := mux.Dispatch(newRequest(http.MethodGet, fmt.Sprintf("/users/%d", i), ""))
				results[i] = string(res.Body)
			}
		}()
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if i%2 == 0 {
			assert.Equal(t, fmt.Sprintf("POST:m%d", i), results[i])
		} else {
			assert.Equal(t, fmt.Sprintf("user %d", i), results[i])
		}
	}
}

func TestPatterns(t *testing.T) {
	t.Parallel()

	mux, err := router.New().
		Route("/b", router.Get(text("b"))).
		Route("/a", router.Get(text("a"))).
		Route("/a/{id}", router.Get(text("by id"))).
		Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"/a", "/a/{id}", "/b"}, mux.Patterns())
}

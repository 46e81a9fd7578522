// Package router maps inbound requests to registered handlers by path and
// method.
//
// Registration happens on a [Router] builder during startup: each call to
// Route associates a path pattern with a [MethodRouter] carrying one
// handler per HTTP method plus an optional fallback. Build seals the
// builder into an immutable [Mux] that dispatches concurrently without
// locking.
//
//	r := router.New().
//		Route("/hello", router.Get(getHello).Post(postHello)).
//		Route("/users/{id}", router.Get(getUser)).
//		Route("/health", router.Any(health))
//
//	mux, err := r.Build()
//	if err != nil {
//		// duplicate method slot, invalid pattern, ...
//	}
//	http.ListenAndServe(":8080", mux)
//
// # Method Dispatch
//
// For a matched path the slot for the request method is selected; absent
// that, the fallback; absent both, a 405 response carrying an Allow
// header. Unmatched paths yield 404. Registering the same method twice
// for one pattern -- whether by chaining or by merging two Route calls --
// is a configuration error reported by Build, never a silent overwrite.
//
// # Patterns
//
// Patterns consist of literal segments, {name} captures, and an optional
// trailing * wildcard: "/users/{id}/files/*". Captured values are attached
// to the request in capture order and available through extract.Params.
package router

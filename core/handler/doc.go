// Package handler erases arbitrary typed functions behind one uniform
// calling convention: accept a request, produce a response.
//
// The adapter constructors [Func0] through [Func4] wrap plain functions
// whose parameters are extractor types and whose return value is anything
// [response.From] can convert. All parameters but the last must be part
// extractors (metadata only); the last may be a full extractor that
// consumes the body. Extraction runs in declaration order and the first
// failure short-circuits: the failure's own response is returned and the
// wrapped function is never invoked.
//
//	func hello(m extract.Method, body extract.Text) response.Response {
//		return response.With(response.Status(http.StatusOK),
//			fmt.Sprintf("%s: %s", m, body))
//	}
//
//	h := handler.Func2(hello)
//
// Wrapped functions must be safe to call from concurrent dispatches: the
// same handler value is invoked repeatedly and must not rely on single-use
// interior state.
package handler

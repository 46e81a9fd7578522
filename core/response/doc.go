// Package response converts arbitrary handler return values into a canonical
// HTTP response representation.
//
// The central entry point is [From], which accepts any value and produces a
// complete [Response]. Built-in conversions cover status codes, strings, byte
// slices, pre-built responses, and errors. Custom types participate by
// implementing [IntoResponse].
//
// # Basic Usage
//
//	res := response.From("hello")                          // 200, text/plain
//	res := response.From(response.Status(http.StatusAccepted))
//	res := response.From([]byte{0x1, 0x2})                 // 200, octet-stream
//
// # Composite Responses
//
// [With] builds a response from one or more part contributors followed by a
// final body value. Part contributors implement [IntoResponseParts] and are
// applied left to right to the status and headers of the response produced
// from the body value:
//
//	// 201 Created with a text/plain body
//	res := response.With(response.Status(http.StatusCreated), "ok")
//
// A part contributor that fails aborts composition; the failure value's own
// conversion becomes the result.
package response

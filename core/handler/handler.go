package handler

import (
	"github.com/dmitrymomot/spike/core/request"
	"github.com/dmitrymomot/spike/core/response"
)

// Handler is the uniform request-to-response callable the router stores.
// Implementations must be safe for concurrent use.
type Handler interface {
	Handle(r *request.Request) response.Response
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(r *request.Request) response.Response

// Handle implements Handler.
func (f HandlerFunc) Handle(r *request.Request) response.Response {
	return f(r)
}

// PartExtractor constrains a type whose pointer extracts a value from
// request metadata without consuming the body.
type PartExtractor[T any] interface {
	*T
	FromRequestParts(p *request.Parts) error
}

// RequestExtractor constrains a type whose pointer extracts a value from
// the full request, including its single-use body.
type RequestExtractor[T any] interface {
	*T
	FromRequest(r *request.Request) error
}

// Func0 wraps a parameterless function. The request is ignored entirely.
func Func0[R any](fn func() R) Handler {
	return HandlerFunc(func(_ *request.Request) response.Response {
		return response.From(fn())
	})
}

// Func1 wraps a single-parameter function. The sole parameter is a full
// extraction and receives the request with its body intact.
func Func1[T1 any, PT1 RequestExtractor[T1], R any](fn func(T1) R) Handler {
	return HandlerFunc(func(req *request.Request) response.Response {
		v1 := new(T1)
		if err := PT1(v1).FromRequest(req); err != nil {
			return response.From(err)
		}
		return response.From(fn(*v1))
	})
}

// Func2 wraps a two-parameter function: one part extraction followed by
// one full extraction.
func Func2[
	T1 any, PT1 PartExtractor[T1],
	T2 any, PT2 RequestExtractor[T2],
	R any,
](fn func(T1, T2) R) Handler {
	return HandlerFunc(func(req *request.Request) response.Response {
		v1 := new(T1)
		if err := PT1(v1).FromRequestParts(&req.Parts); err != nil {
			return response.From(err)
		}
		v2 := new(T2)
		if err := PT2(v2).FromRequest(req); err != nil {
			return response.From(err)
		}
		return response.From(fn(*v1, *v2))
	})
}

// Func3 wraps a three-parameter function: two part extractions followed
// by one full extraction.
func Func3[
	T1 any, PT1 PartExtractor[T1],
	T2 any, PT2 PartExtractor[T2],
	T3 any, PT3 RequestExtractor[T3],
	R any,
](fn func(T1, T2, T3) R) Handler {
	return HandlerFunc(func(req *request.Request) response.Response {
		v1 := new(T1)
		if err := PT1(v1).FromRequestParts(&req.Parts); err != nil {
			return response.From(err)
		}
		v2 := new(T2)
		if err := PT2(v2).FromRequestParts(&req.Parts); err != nil {
			return response.From(err)
		}
		v3 := new(T3)
		if err := PT3(v3).FromRequest(req); err != nil {
			return response.From(err)
		}
		return response.From(fn(*v1, *v2, *v3))
	})
}

// Func4 wraps a four-parameter function: three part extractions followed
// by one full extraction.
func Func4[
	T1 any, PT1 PartExtractor[T1],
	T2 any, PT2 PartExtractor[T2],
	T3 any, PT3 PartExtractor[T3],
	T4 any, PT4 RequestExtractor[T4],
	R any,
](fn func(T1, T2, T3, T4) R) Handler {
	return HandlerFunc(func(req *request.Request) response.Response {
		v1 := new(T1)
		if err := PT1(v1).FromRequestParts(&req.Parts); err != nil {
			return response.From(err)
		}
		v2 := new(T2)
		if err := PT2(v2).FromRequestParts(&req.Parts); err != nil {
			return response.From(err)
		}
		v3 := new(T3)
		if err := PT3(v3).FromRequestParts(&req.Parts); err != nil {
			return response.From(err)
		}
		v4 := new(T4)
		if err := PT4(v4).FromRequest(req); err != nil {
			return response.From(err)
		}
		return response.From(fn(*v1, *v2, *v3, *v4))
	})
}

// Package extract converts pieces of an inbound request into typed values
// handler functions can consume.
//
// Extraction comes in two kinds. Part extractors read request metadata only
// (method, path, headers, captured params), never touch the body, and may
// run any number of times. Full extractors consume the body, which is a
// destructive single-use read, so a handler may declare at most one and it
// must be the last parameter.
//
// Built-in part extractors: [Method], [Path], [Headers], [Params].
// Built-in full extractors: [Text] (UTF-8 validated) and [Bytes].
// Every part extractor also satisfies the full-extraction contract by
// reading metadata only, so it can appear in the last position too.
//
// A failed body read or a non-UTF-8 body yields a [*BodyError], whose
// response conversion is a fixed 500 diagnostic.
package extract

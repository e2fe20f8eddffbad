// Package rivet compiles typed request values into transport-ready HTTP
// requests.
//
// Each request type describes its endpoint once — method, path template,
// query-eligible fields, body presence — by implementing [Endpoint]. A
// [Compiler] turns a populated request value into a [ResolvedRequest]:
// path placeholders substituted, present query fields encoded in declaration
// order, absent optional fields omitted, and the body serialized through a
// pluggable [Codec]. A [Client] pairs the compiler with a narrow [Transport]
// contract and decodes responses into their declared shapes.
//
// Compilation is pure and synchronous; a request value compiled twice yields
// bit-for-bit identical output, and independent requests may be compiled
// concurrently without coordination.
package rivet

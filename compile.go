package rivet

import (
	"net/http"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ResolvedRequest is a fully materialized HTTP request: method, relative URL
// (path plus query string), headers, and serialized body. It is consumed by
// a Transport and never mutated after compilation.
type ResolvedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte // nil when the endpoint carries no body
}

// Compiler turns request values into ResolvedRequests. Compilation is pure:
// the same request value always compiles to bit-for-bit identical output,
// and independent compilations need no coordination. The zero value is not
// usable; call NewCompiler.
type Compiler struct {
	codec    Codec
	validate *validator.Validate

	mu    sync.RWMutex
	cache map[reflect.Type]*typeInfo
}

// NewCompiler returns a Compiler with the JSON codec.
func NewCompiler() *Compiler {
	return &Compiler{
		codec:    JSONCodec(),
		validate: validator.New(),
		cache:    make(map[reflect.Type]*typeInfo),
	}
}

// WithCodec sets the body codec. Passing nil disables body serialization;
// compiling an endpoint that claims a body then fails with
// CodeMalformedDescriptor. It returns the compiler for chaining.
func (c *Compiler) WithCodec(codec Codec) *Compiler {
	c.codec = codec
	return c
}

// Compile resolves req's path template, builds its query string, validates
// the value, and serializes the body when the descriptor declares one. All
// failures surface before any transport work: an unresolved placeholder is a
// construction error, not an HTTP failure.
func (c *Compiler) Compile(req Endpoint) (*ResolvedRequest, error) {
	desc := req.Describe()

	if desc.HasBody && c.codec == nil {
		return nil, Errorf(CodeMalformedDescriptor, "%T: descriptor claims a body but compiler has no codec", req)
	}

	info, err := c.typeInfo(reflect.TypeOf(req), desc)
	if err != nil {
		return nil, err
	}

	rv := reflect.Indirect(reflect.ValueOf(req))

	var pathErr error
	lookup := func(name string) (string, bool) {
		val, ok := fieldValue(rv.Field(info.pathFields[name]))
		if !ok {
			return "", false
		}
		s, serr := stringifyWireValue(val)
		if serr != nil {
			// Value is present but unencodable; report as such rather
			// than as missing.
			pathErr = Errorf(CodeEncodingFailure, "path field %q: %v", name, serr)
			return "", true
		}
		// A required identifier left at its zero value is absent, not a
		// valid empty segment.
		return s, s != ""
	}
	path, err := info.template.resolve(lookup, desc.RawPath)
	if pathErr != nil {
		return nil, pathErr
	}
	if err != nil {
		return nil, err
	}

	if err := c.validate.Struct(req); err != nil {
		return nil, translateError(err)
	}

	query, err := buildQuery(rv, desc, info)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedRequest{
		Method: desc.Method,
		URL:    path,
		Header: make(http.Header),
	}
	if resolved.Method == "" {
		resolved.Method = http.MethodGet
	}
	if query != "" {
		resolved.URL += "?" + query
	}

	if desc.HasBody {
		body, err := c.codec.Marshal(req)
		if err != nil {
			return nil, Wrap(CodeEncodingFailure, err, "encode body: "+err.Error())
		}
		resolved.Body = body
		resolved.Header.Set("Content-Type", c.codec.ContentType())
	}

	return resolved, nil
}

// typeInfo returns cached reflection metadata for t, building and validating
// it on first use. Descriptors are static per type, so the first successful
// build is authoritative.
func (c *Compiler) typeInfo(t reflect.Type, desc Descriptor) (*typeInfo, error) {
	c.mu.RLock()
	info, ok := c.cache[t]
	c.mu.RUnlock()
	if ok {
		return info, nil
	}

	info, err := buildTypeInfo(t, desc)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[t] = info
	c.mu.Unlock()
	return info, nil
}

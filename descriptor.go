package rivet

import (
	"reflect"
	"strings"
)

// Descriptor is the static metadata for one endpoint: how to turn a request
// value of the describing type into an HTTP request. Descriptors are fixed
// per type and never mutated after construction.
type Descriptor struct {
	// Method is the HTTP method. Defaults to GET when empty.
	Method string

	// PathTemplate is the URL path with {name} placeholders. Each
	// placeholder must correspond to a struct field carrying a `path:"name"`
	// tag on the request type.
	PathTemplate string

	// QueryFields lists the wire names of query-eligible fields in the
	// order they appear in the query string. Each name must correspond to a
	// struct field carrying a `schema:"name"` tag.
	QueryFields []string

	// HasBody indicates the request carries a serialized body. An
	// empty-but-present body is still sent; body presence never depends on
	// which optional fields are set.
	HasBody bool

	// HasResponse indicates the endpoint returns a decodable body.
	HasResponse bool

	// RawPath disables percent-encoding of substituted path values. Only
	// set this for compatibility with services that expect identifiers
	// spliced verbatim.
	RawPath bool
}

// Endpoint is implemented by request types to declare their endpoint
// metadata. Describe must return the same Descriptor on every call.
type Endpoint interface {
	Describe() Descriptor
}

// typeInfo caches the reflection work for one request type: the parsed path
// template plus field indexes for path substitution and query building.
type typeInfo struct {
	template    *pathTemplate
	pathFields  map[string]int
	queryFields map[string]int
}

// buildTypeInfo validates a descriptor against its concrete request type.
// Inconsistencies other than a placeholder with no backing field are
// programming errors and report CodeMalformedDescriptor; they belong in
// tests, not in request paths.
func buildTypeInfo(t reflect.Type, desc Descriptor) (*typeInfo, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, Errorf(CodeMalformedDescriptor, "%s: request type must be a struct", t)
	}

	tmpl, err := parsePathTemplate(desc.PathTemplate)
	if err != nil {
		return nil, err
	}

	info := &typeInfo{
		template:    tmpl,
		pathFields:  make(map[string]int),
		queryFields: make(map[string]int),
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if name := f.Tag.Get("path"); name != "" && name != "-" {
			info.pathFields[name] = i
		}
		if alias := queryAlias(f); alias != "" {
			info.queryFields[alias] = i
		}
	}

	placeholders := make(map[string]bool, len(tmpl.names))
	for _, name := range tmpl.names {
		placeholders[name] = true
		if _, ok := info.pathFields[name]; !ok {
			return nil, Errorf(CodeMissingPathField, "path template %q references {%s} but %s has no matching path field", desc.PathTemplate, name, t.Name())
		}
	}
	for name := range info.pathFields {
		if !placeholders[name] {
			return nil, Errorf(CodeMalformedDescriptor, "%s: path field %q matches no placeholder in %q", t.Name(), name, desc.PathTemplate)
		}
	}
	for _, name := range desc.QueryFields {
		if _, ok := info.queryFields[name]; !ok {
			return nil, Errorf(CodeMalformedDescriptor, "%s: declared query field %q has no schema-tagged struct field", t.Name(), name)
		}
	}

	return info, nil
}

// queryAlias extracts the wire name from a `schema` tag, the same tag
// vocabulary the gorilla/schema decoder consumes.
func queryAlias(f reflect.StructField) string {
	tag, ok := f.Tag.Lookup("schema")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return ""
	}
	return name
}

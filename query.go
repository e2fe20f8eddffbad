package rivet

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// buildQuery produces the query string for a request value. Fields appear in
// the descriptor's declared order — the remote side is order-insensitive,
// but deterministic output keeps compiled requests reproducible. Absent
// fields are omitted entirely; zero present fields yield "" with no "?".
func buildQuery(rv reflect.Value, desc Descriptor, info *typeInfo) (string, error) {
	var b strings.Builder
	for _, name := range desc.QueryFields {
		fv := rv.Field(info.queryFields[name])
		val, ok := fieldValue(fv)
		if !ok {
			continue
		}
		s, err := stringifyWireValue(val)
		if err != nil {
			return "", Errorf(CodeEncodingFailure, "query field %q: %v", name, err)
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(s))
	}
	return b.String(), nil
}

// fieldValue unwraps a struct field to its wire value, reporting presence.
// Nil pointers and unset or null Opt values are absent; everything else is
// present. Non-pointer fields are always present, which is what makes a
// plain bool suitable for a required query flag.
func fieldValue(v reflect.Value) (reflect.Value, bool) {
	if v.CanInterface() {
		if ov, ok := v.Interface().(optionalValue); ok {
			raw, present := ov.wireValue()
			if !present {
				return reflect.Value{}, false
			}
			return reflect.ValueOf(raw), true
		}
	}
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, true
}

// stringifyWireValue renders a scalar in its query/path string form:
// booleans as true/false, strings verbatim, numbers in decimal.
func stringifyWireValue(v reflect.Value) (string, error) {
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("kind %s is not representable as a single value", v.Kind())
	}
}

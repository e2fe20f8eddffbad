package rivet

import "encoding/json"

const (
	optUnset = iota
	optNull
	optSet
)

// Opt holds an optional value with three distinct states: unset, set to a
// value, and explicitly null. Unset means "send nothing at all"; null means
// "send a literal null". The zero value is unset.
//
// Tag Opt fields `json:",omitzero"` so unset fields are omitted from
// serialized bodies rather than emitted as null. Pointer fields remain the
// simpler choice when a type never needs the explicit-null state.
type Opt[T any] struct {
	state uint8
	val   T
}

// OptValue returns an Opt set to v.
func OptValue[T any](v T) Opt[T] {
	return Opt[T]{state: optSet, val: v}
}

// OptNull returns an Opt that serializes as an explicit null.
func OptNull[T any]() Opt[T] {
	return Opt[T]{state: optNull}
}

// Get returns the contained value and whether one is set.
func (o Opt[T]) Get() (T, bool) {
	if o.state != optSet {
		var zero T
		return zero, false
	}
	return o.val, true
}

// Or returns the contained value, or fallback when none is set.
func (o Opt[T]) Or(fallback T) T {
	if o.state != optSet {
		return fallback
	}
	return o.val
}

// IsZero reports whether the Opt is unset. encoding/json's omitzero option
// uses this to omit unset fields entirely.
func (o Opt[T]) IsZero() bool {
	return o.state == optUnset
}

// IsNull reports whether the Opt is explicitly null.
func (o Opt[T]) IsNull() bool {
	return o.state == optNull
}

func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if o.state != optSet {
		return []byte("null"), nil
	}
	return json.Marshal(o.val)
}

func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Opt[T]{state: optNull}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Opt[T]{state: optSet, val: v}
	return nil
}

// wireValue implements the presence probe used by path resolution and query
// building: null and unset are both "nothing to substitute or append".
func (o Opt[T]) wireValue() (any, bool) {
	if o.state != optSet {
		return nil, false
	}
	return o.val, true
}

// optionalValue is satisfied by every Opt instantiation.
type optionalValue interface {
	IsZero() bool
	IsNull() bool
	wireValue() (any, bool)
}

// Ptr returns a pointer to v. Convenience for populating optional pointer
// fields from literals.
func Ptr[T any](v T) *T {
	return &v
}

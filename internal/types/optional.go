package types

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state JSON field used by partial-update inputs. It
// distinguishes a field that was absent from the payload (leave unchanged)
// from one that was explicitly null (clear) or carried a value.
type Optional[T any] struct {
	set   bool
	null  bool
	value T
}

// Set builds an Optional holding a value.
func Set[T any](v T) Optional[T] {
	return Optional[T]{set: true, value: v}
}

// Null builds an Optional that explicitly clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet reports whether the field appeared in the payload at all.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was explicitly null.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Value returns the held value and whether one is present.
func (o Optional[T]) Value() (T, bool) {
	if !o.set || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Ptr returns a pointer to the held value, or nil when absent or null.
func (o Optional[T]) Ptr() *T {
	if v, ok := o.Value(); ok {
		return &v
	}
	return nil
}

// UnmarshalJSON is only invoked for present fields, so set is always true
// here; absent fields keep the zero Optional.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(data, []byte("null")) {
		o.null = true
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

// MarshalJSON renders null for cleared or absent fields.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

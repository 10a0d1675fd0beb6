// internal/app/system/patch/patch.go

// Package patch provides tri-state fields for partial updates. A Field
// distinguishes "absent from the request", "explicitly null", and "set to a
// value", so that null can clear optional fields instead of being read as
// absence.
package patch

import "encoding/json"

// Field is a JSON value that may be absent, null, or set.
// The zero value means absent.
type Field[T any] struct {
	value   T
	present bool
	null    bool
}

// Set returns a Field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, present: true}
}

// Null returns an explicitly-null Field.
func Null[T any]() Field[T] {
	return Field[T]{present: true, null: true}
}

// Present reports whether the field appeared in the request at all.
func (f Field[T]) Present() bool { return f.present }

// IsNull reports whether the field was an explicit JSON null.
func (f Field[T]) IsNull() bool { return f.present && f.null }

// Value returns the decoded value and whether one was set (present, not null).
func (f Field[T]) Value() (T, bool) {
	if !f.present || f.null {
		var zero T
		return zero, false
	}
	return f.value, true
}

// UnmarshalJSON is only invoked for keys present in the document, so any call
// marks the field present; a literal null marks it null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if string(data) == "null" {
		f.null = true
		return nil
	}
	return json.Unmarshal(data, &f.value)
}

// MarshalJSON round-trips the field; absent and null both encode as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.present || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

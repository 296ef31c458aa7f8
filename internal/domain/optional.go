package domain

import (
	"bytes"
	"encoding/json"
)

// Optional tracks whether a JSON field was present in the payload,
// distinguishing an absent field from an explicit null. The README
// renderer prints "Not present" for the former and "Not specified" for
// the latter, so the distinction must survive decoding.
type Optional[T any] struct {
	Present bool
	Value   *T
}

// Some builds a present Optional with the given value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: &v}
}

// Null builds a present Optional holding an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true}
}

// UnmarshalJSON is only invoked when the field exists in the payload,
// which is what makes Present reliable.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON renders the held value, or null when none is set. Code
// that must preserve field absence across a round trip keeps the raw
// payload instead of re-encoding the decoded struct.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

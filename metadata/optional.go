// SPDX-License-Identifier: MIT

package metadata

import (
	"encoding/json"
	"strconv"
)

// Int is an integer that may be absent. Absence is a distinct state, never
// encoded as -1 or infinity. JSON encodes absence as null.
type Int struct {
	Value int
	Valid bool
}

// SomeInt returns a present Int.
func SomeInt(v int) Int { return Int{Value: v, Valid: true} }

// Get returns the value and whether it is present.
func (i Int) Get() (int, bool) { return i.Value, i.Valid }

// String renders the value or "absent".
func (i Int) String() string {
	if !i.Valid {
		return absent
	}

	return strconv.Itoa(i.Value)
}

// MarshalJSON implements json.Marshaler.
func (i Int) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(i.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*i = Int{}
		return nil
	}
	if err := json.Unmarshal(b, &i.Value); err != nil {
		return err
	}
	i.Valid = true

	return nil
}

// Float is a float64 that may be absent.
type Float struct {
	Value float64
	Valid bool
}

// SomeFloat returns a present Float.
func SomeFloat(v float64) Float { return Float{Value: v, Valid: true} }

// Get returns the value and whether it is present.
func (f Float) Get() (float64, bool) { return f.Value, f.Valid }

// String renders the value or "absent".
func (f Float) String() string {
	if !f.Valid {
		return absent
	}

	return strconv.FormatFloat(f.Value, 'g', -1, 64)
}

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(f.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = Float{}
		return nil
	}
	if err := json.Unmarshal(b, &f.Value); err != nil {
		return err
	}
	f.Valid = true

	return nil
}

const absent = "absent"

package schema

import (
	"errors"
	"fmt"
	"strconv"
)

// Input object types accepted by the edit mutations.
const (
	InputEditUser  = "EditUserInput"
	InputEditGroup = "EditGroupInput"
)

// ErrInvalidValue is returned when a value cannot be converted to its field's type.
var ErrInvalidValue = errors.New("invalid value")

// Input is the ordered set of settable scalar fields of a GraphQL input
// object. The zero Input means the fields are unknown.
type Input struct {
	Type   string
	fields []FieldInfo
}

// NewInput keeps the scalar and enum fields of an introspected input type.
func NewInput(typ string, fields []FieldInfo) Input {
	in := Input{Type: typ}
	for _, f := range fields {
		if f.scalar() {
			in.fields = append(in.fields, f)
		}
	}
	return in
}

// IsZero reports whether no fields are known.
func (in Input) IsZero() bool {
	return len(in.fields) == 0
}

// Names returns the field names in order.
func (in Input) Names() []string {
	out := make([]string, len(in.fields))
	for i, f := range in.fields {
		out[i] = f.Name
	}
	return out
}

// Field returns the named field.
func (in Input) Field(name string) (FieldInfo, bool) {
	for _, f := range in.fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldInfo{}, false
}

// Coerce converts a text value to the scalar type of the named field.
// Values that are not strings, and fields of other types, pass through.
func (in Input) Coerce(name string, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	f, ok := in.Field(name)
	if !ok {
		return v, nil
	}

	var (
		out any
		err error
	)
	switch f.TypeName {
	case "Boolean":
		out, err = strconv.ParseBool(s)
	case "Int":
		out, err = strconv.Atoi(s)
	case "Float":
		out, err = strconv.ParseFloat(s, 64)
	default:
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %q is not a %s", name, ErrInvalidValue, s, f.TypeName)
	}
	return out, nil
}

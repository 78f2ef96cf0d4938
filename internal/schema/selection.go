package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Record is a raw object decoded from the GraphQL API.
type Record map[string]any

// Field is a single named value of a record, formatted for display.
type Field struct {
	Name  string
	Value string
}

var namePattern = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

// Selection is the ordered, immutable set of fields requested for one GraphQL
// type, with the fields that identify and describe an object of that type.
type Selection struct {
	Type        string
	ID          string
	Description string
	fields      []string
}

// NewSelection builds a selection. The id and description fields are always
// part of the selection, id first.
func NewSelection(typ, id, description string, fields ...string) (Selection, error) {
	typ = strings.TrimSpace(typ)
	id = strings.TrimSpace(id)
	description = strings.TrimSpace(description)
	if typ == "" {
		return Selection{}, fmt.Errorf("selection: type name is required")
	}
	if id == "" {
		return Selection{}, fmt.Errorf("selection %s: id field is required", typ)
	}
	if description == "" {
		description = id
	}

	seen := map[string]struct{}{}
	ordered := make([]string, 0, len(fields)+2)
	add := func(name string) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil
		}
		if !namePattern.MatchString(name) {
			return fmt.Errorf("selection %s: invalid field name %q", typ, name)
		}
		if _, ok := seen[name]; ok {
			return nil
		}
		seen[name] = struct{}{}
		ordered = append(ordered, name)
		return nil
	}
	if err := add(id); err != nil {
		return Selection{}, err
	}
	for _, f := range fields {
		if err := add(f); err != nil {
			return Selection{}, err
		}
	}
	if err := add(description); err != nil {
		return Selection{}, err
	}

	return Selection{Type: typ, ID: id, Description: description, fields: ordered}, nil
}

// MustSelection is NewSelection for static definitions.
func MustSelection(typ, id, description string, fields ...string) Selection {
	sel, err := NewSelection(typ, id, description, fields...)
	if err != nil {
		panic(err)
	}
	return sel
}

// All returns the selected field names in order.
func (s Selection) All() []string {
	out := make([]string, len(s.fields))
	copy(out, s.fields)
	return out
}

// Has reports whether name is part of the selection.
func (s Selection) Has(name string) bool {
	for _, f := range s.fields {
		if f == name {
			return true
		}
	}
	return false
}

// Editable returns every selected field except the id.
func (s Selection) Editable() []string {
	out := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		if f != s.ID {
			out = append(out, f)
		}
	}
	return out
}

// IsZero reports whether the selection was never built.
func (s Selection) IsZero() bool {
	return s.Type == "" && len(s.fields) == 0
}

// IDOf returns the identifier of r.
func (s Selection) IDOf(r Record) string {
	return FormatValue(r[s.ID])
}

// DescriptionOf returns the human readable label of r, falling back to the id.
func (s Selection) DescriptionOf(r Record) string {
	if d := FormatValue(r[s.Description]); d != "" {
		return d
	}
	return s.IDOf(r)
}

// Fields returns the selected values of r in selection order.
func (s Selection) Fields(r Record) []Field {
	out := make([]Field, 0, len(s.fields))
	for _, name := range s.fields {
		out = append(out, Field{Name: name, Value: FormatValue(r[name])})
	}
	return out
}

// FormatValue renders a decoded JSON scalar as text.
func FormatValue(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

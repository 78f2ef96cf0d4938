package schema

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/brokeneck/brokeneck/cli/internal/logging"
)

// Type names served by the backend.
const (
	TypeUser  = "User"
	TypeGroup = "Group"
)

// preferred description fields, in order.
var descriptionCandidates = []string{"email", "name", "displayName", "username", "nickname"}

// FieldInfo describes one field of a GraphQL object type, with NON_NULL and
// LIST wrappers already unwrapped.
type FieldInfo struct {
	Name     string
	Kind     string
	TypeName string
	List     bool
}

func (f FieldInfo) scalar() bool {
	return !f.List && (f.Kind == "SCALAR" || f.Kind == "ENUM")
}

// Introspector fetches the field lists of GraphQL object and input types.
type Introspector interface {
	IntrospectType(ctx context.Context, name string) ([]FieldInfo, error)
	IntrospectInput(ctx context.Context, name string) ([]FieldInfo, error)
}

// Override pins the selection of a type instead of discovering it.
type Override struct {
	ID          string   `yaml:"id"`
	Description string   `yaml:"description"`
	Fields      []string `yaml:"fields"`
}

// Defaults are used when neither an override nor introspection is available.
var Defaults = map[string]Selection{
	TypeUser:  MustSelection(TypeUser, "id", "email"),
	TypeGroup: MustSelection(TypeGroup, "id", "name"),
}

// Registry resolves and caches one Selection per type name.
type Registry struct {
	mu           sync.Mutex
	cache        map[string]Selection
	inputs       map[string]Input
	overrides    map[string]Override
	introspector Introspector
	log          logrus.FieldLogger
}

// NewRegistry creates a registry. introspector may be nil.
func NewRegistry(introspector Introspector, overrides map[string]Override, log logrus.FieldLogger) *Registry {
	if log == nil {
		log = logging.Discard()
	}
	return &Registry{
		cache:        map[string]Selection{},
		inputs:       map[string]Input{},
		overrides:    overrides,
		introspector: introspector,
		log:          log,
	}
}

// Resolve returns the selection for typ. The first successful resolution is
// kept for the lifetime of the registry.
func (r *Registry) Resolve(ctx context.Context, typ string) (Selection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sel, ok := r.cache[typ]; ok {
		return sel, nil
	}

	sel, err := r.resolve(ctx, typ)
	if err != nil {
		return Selection{}, err
	}
	r.cache[typ] = sel
	return sel, nil
}

// ResolveInput returns the settable fields of an input type. When the
// backend cannot be introspected the zero Input is returned and cached.
func (r *Registry) ResolveInput(ctx context.Context, typ string) Input {
	r.mu.Lock()
	defer r.mu.Unlock()

	if in, ok := r.inputs[typ]; ok {
		return in
	}

	in := Input{Type: typ}
	if r.introspector != nil {
		fields, err := r.introspector.IntrospectInput(ctx, typ)
		if err == nil {
			in = NewInput(typ, fields)
		} else {
			r.log.WithFields(logrus.Fields{"type": typ, "error": err}).Warn("input introspection unavailable, editing selected fields as text")
		}
	}
	r.inputs[typ] = in
	return in
}

func (r *Registry) resolve(ctx context.Context, typ string) (Selection, error) {
	override, hasOverride := r.overrides[typ]
	if hasOverride && len(override.Fields) > 0 {
		id := override.ID
		if id == "" {
			id = "id"
		}
		return NewSelection(typ, id, override.Description, override.Fields...)
	}

	if r.introspector != nil {
		fields, err := r.introspector.IntrospectType(ctx, typ)
		if err == nil && len(fields) > 0 {
			return fromIntrospection(typ, fields, override)
		}
		r.log.WithFields(logrus.Fields{"type": typ, "error": err}).Warn("introspection unavailable, using default fields")
	}

	sel, ok := Defaults[typ]
	if !ok {
		return Selection{}, fmt.Errorf("no field selection known for type %s", typ)
	}
	if override.ID != "" || override.Description != "" {
		id := override.ID
		if id == "" {
			id = sel.ID
		}
		desc := override.Description
		if desc == "" {
			desc = sel.Description
		}
		return NewSelection(typ, id, desc, sel.All()...)
	}
	return sel, nil
}

func fromIntrospection(typ string, fields []FieldInfo, override Override) (Selection, error) {
	names := make([]string, 0, len(fields))
	present := map[string]FieldInfo{}
	for _, f := range fields {
		if !f.scalar() {
			continue
		}
		names = append(names, f.Name)
		present[f.Name] = f
	}
	if len(names) == 0 {
		return Selection{}, fmt.Errorf("type %s has no scalar fields", typ)
	}

	id := override.ID
	if id == "" {
		if f, ok := present["id"]; ok && f.TypeName == "ID" {
			id = "id"
		}
	}
	if id == "" {
		for _, name := range names {
			if present[name].TypeName == "ID" {
				id = name
				break
			}
		}
	}
	if id == "" {
		id = names[0]
	}

	desc := override.Description
	if desc == "" {
		for _, candidate := range descriptionCandidates {
			if _, ok := present[candidate]; ok {
				desc = candidate
				break
			}
		}
	}
	if desc == "" {
		for _, name := range names {
			if name != id && present[name].TypeName == "String" {
				desc = name
				break
			}
		}
	}

	return NewSelection(typ, id, desc, names...)
}

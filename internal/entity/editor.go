package entity

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// FieldEditor submits a fixed set of field values through the gateway, then
// refreshes. It is the non-interactive counterpart of an edit dialog.
type FieldEditor struct {
	kind    Kind
	gateway MutationGateway
	values  map[string]any
}

// NewFieldEditor validates values against the kind's editable fields and
// converts text values to the types the edit input declares.
func NewFieldEditor(kind Kind, gateway MutationGateway, values map[string]any) (*FieldEditor, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no fields to edit")
	}
	editable := map[string]struct{}{}
	for _, f := range kind.Editable() {
		editable[f] = struct{}{}
	}
	var unknown []string
	for name := range values {
		if _, ok := editable[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%s: %w: %s", kind.Lower(), ErrUnknownField, strings.Join(unknown, ", "))
	}

	typed := make(map[string]any, len(values))
	for name, v := range values {
		converted, err := kind.EditInput.Coerce(name, v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind.Lower(), err)
		}
		typed[name] = converted
	}
	return &FieldEditor{kind: kind, gateway: gateway, values: typed}, nil
}

// Edit implements Editor.
func (e *FieldEditor) Edit(ctx context.Context, current Entity, refresh RefreshFunc) error {
	if err := e.gateway.Edit(ctx, current.ID, e.values); err != nil {
		return err
	}
	return refresh(ctx)
}

// ParseAssignments turns "name=value" pairs into edit values.
func ParseAssignments(pairs []string) (map[string]any, error) {
	values := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q (want field=value)", pair)
		}
		values[name] = value
	}
	return values, nil
}

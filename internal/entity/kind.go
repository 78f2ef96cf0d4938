package entity

import (
	"strings"

	"github.com/brokeneck/brokeneck/cli/internal/schema"
)

// Prompt is the text shown by a ConfirmationGate.
type Prompt struct {
	Title  string
	Text   string
	Action string
}

// Kind describes one administrable entity type and the relation shown on its
// detail view.
type Kind struct {
	Name          string
	Plural        string
	RelationName  string
	RelationField string

	Fields         schema.Selection
	RelationFields schema.Selection
	EditInput      schema.Input

	DeletePrompt         Prompt
	RemoveRelationPrompt Prompt
}

// UserKind is a user whose relations are its group memberships.
func UserKind(user, group schema.Selection) Kind {
	return Kind{
		Name:           "User",
		Plural:         "Users",
		RelationName:   "Group",
		RelationField:  "groups",
		Fields:         user,
		RelationFields: group,
		DeletePrompt: Prompt{
			Title:  "Delete user",
			Text:   "Are you sure you want to delete this user?",
			Action: "Confirm",
		},
		RemoveRelationPrompt: Prompt{
			Title:  "Remove from group",
			Text:   "Are you sure you want to remove user from group?",
			Action: "Confirm",
		},
	}
}

// GroupKind is a group whose relations are its members.
func GroupKind(group, user schema.Selection) Kind {
	return Kind{
		Name:           "Group",
		Plural:         "Groups",
		RelationName:   "User",
		RelationField:  "users",
		Fields:         group,
		RelationFields: user,
		DeletePrompt: Prompt{
			Title:  "Delete group",
			Text:   "Are you sure you want to delete this group?",
			Action: "Confirm",
		},
		RemoveRelationPrompt: Prompt{
			Title:  "Remove user from group",
			Text:   "Are you sure you want to remove user from group?",
			Action: "Confirm",
		},
	}
}

// WithEditInput returns the kind with the fields its edit mutation accepts.
func (k Kind) WithEditInput(in schema.Input) Kind {
	k.EditInput = in
	return k
}

// Editable returns the fields an edit may set: the edit input's fields when
// known, otherwise the selected fields. The id is never editable.
func (k Kind) Editable() []string {
	if k.EditInput.IsZero() {
		return k.Fields.Editable()
	}
	out := []string{}
	for _, name := range k.EditInput.Names() {
		if name != k.Fields.ID {
			out = append(out, name)
		}
	}
	return out
}

// Lower returns the kind name for use in sentences.
func (k Kind) Lower() string {
	return strings.ToLower(k.Name)
}

// Entity is a record projected through its kind's selections.
type Entity struct {
	ID          string
	Description string
	Fields      []schema.Field
	Relations   []Relation
}

// Relation is one associated record, e.g. a group a user belongs to.
type Relation struct {
	ID          string
	Description string
}

// Project converts a raw record into an Entity. Missing or malformed relation
// lists yield no relations.
func (k Kind) Project(r schema.Record) Entity {
	e := Entity{
		ID:          k.Fields.IDOf(r),
		Description: k.Fields.DescriptionOf(r),
		Fields:      k.Fields.Fields(r),
		Relations:   []Relation{},
	}
	items, _ := r[k.RelationField].([]any)
	for _, item := range items {
		rec, ok := asRecord(item)
		if !ok {
			continue
		}
		e.Relations = append(e.Relations, Relation{
			ID:          k.RelationFields.IDOf(rec),
			Description: k.RelationFields.DescriptionOf(rec),
		})
	}
	return e
}

// Relation returns the relation with the given id.
func (e Entity) Relation(id string) (Relation, bool) {
	for _, r := range e.Relations {
		if r.ID == id {
			return r, true
		}
	}
	return Relation{}, false
}

func asRecord(v any) (schema.Record, bool) {
	switch typed := v.(type) {
	case schema.Record:
		return typed, true
	case map[string]any:
		return schema.Record(typed), true
	}
	return nil, false
}

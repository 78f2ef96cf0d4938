package api

import "github.com/brokeneck/brokeneck/cli/internal/schema"

// --- Inputs ---

// MembershipInput adds or removes a user from a group.
type MembershipInput struct {
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
}

// DeleteInput deletes a user or group.
type DeleteInput struct {
	ID string `json:"id"`
}

// --- Responses ---

type pagedRecords struct {
	Data []schema.Record `json:"data"`
}

// typeRef is one level of an introspected field type.
type typeRef struct {
	Kind   string   `json:"kind"`
	Name   string   `json:"name"`
	OfType *typeRef `json:"ofType"`
}

type introspectedField struct {
	Name string  `json:"name"`
	Type typeRef `json:"type"`
}

type introspectedType struct {
	Name        string              `json:"name"`
	Fields      []introspectedField `json:"fields"`
	InputFields []introspectedField `json:"inputFields"`
}

func fieldInfos(fields []introspectedField) []schema.FieldInfo {
	out := make([]schema.FieldInfo, 0, len(fields))
	for _, f := range fields {
		kind, typeName, list := f.Type.unwrap()
		out = append(out, schema.FieldInfo{
			Name:     f.Name,
			Kind:     kind,
			TypeName: typeName,
			List:     list,
		})
	}
	return out
}

// unwrap strips NON_NULL and LIST wrappers.
func (t typeRef) unwrap() (kind, name string, list bool) {
	cur := &t
	for cur != nil {
		switch cur.Kind {
		case "NON_NULL":
		case "LIST":
			list = true
		default:
			return cur.Kind, cur.Name, list
		}
		cur = cur.OfType
	}
	return "", "", list
}

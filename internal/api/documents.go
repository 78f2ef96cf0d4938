package api

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/brokeneck/brokeneck/cli/internal/schema"
)

// Document is a parsed GraphQL operation.
type Document struct {
	Name string
	Text string
}

// NewDocument parses text and checks it holds exactly one operation.
func NewDocument(name, text string) (Document, error) {
	parsed, err := parser.ParseQuery(&ast.Source{Name: name, Input: text})
	if err != nil {
		return Document{}, fmt.Errorf("invalid document %s: %w", name, err)
	}
	if len(parsed.Operations) != 1 {
		return Document{}, fmt.Errorf("invalid document %s: want 1 operation, got %d", name, len(parsed.Operations))
	}
	return Document{Name: name, Text: text}, nil
}

func mustDocument(name, text string) Document {
	doc, err := NewDocument(name, text)
	if err != nil {
		panic(err)
	}
	return doc
}

func selectionSet(sel schema.Selection) string {
	return "{ " + strings.Join(sel.All(), " ") + " }"
}

// --- Queries ---

// LoadUserDocument loads a user and its groups.
func LoadUserDocument(user, group schema.Selection) (Document, error) {
	return NewDocument("LoadUser", fmt.Sprintf(
		"query LoadUser($id: ID!) { user(id: $id) { %s groups %s } }",
		strings.Join(user.All(), " "), selectionSet(group),
	))
}

// LoadGroupDocument loads a group and its members.
func LoadGroupDocument(group, user schema.Selection) (Document, error) {
	return NewDocument("LoadGroup", fmt.Sprintf(
		"query LoadGroup($id: ID!) { group(id: $id) { %s users %s } }",
		strings.Join(group.All(), " "), selectionSet(user),
	))
}

// ListUsersDocument searches users.
func ListUsersDocument(user schema.Selection) (Document, error) {
	return NewDocument("ListUsers", fmt.Sprintf(
		"query ListUsers($search: String, $max: Int) { users(search: $search, max: $max) { data %s } }",
		selectionSet(user),
	))
}

// ListGroupsDocument searches groups.
func ListGroupsDocument(group schema.Selection) (Document, error) {
	return NewDocument("ListGroups", fmt.Sprintf(
		"query ListGroups($search: String, $max: Int) { groups(search: $search, max: $max) { data %s } }",
		selectionSet(group),
	))
}

// --- Mutations ---

// EditUserDocument returns the id of the edited user.
func EditUserDocument(user schema.Selection) (Document, error) {
	return NewDocument("EditUser", fmt.Sprintf(
		"mutation EditUser($input: %s!) { editUser(input: $input) { %s } }", schema.InputEditUser, user.ID,
	))
}

// EditGroupDocument returns the id of the edited group.
func EditGroupDocument(group schema.Selection) (Document, error) {
	return NewDocument("EditGroup", fmt.Sprintf(
		"mutation EditGroup($input: %s!) { editGroup(input: $input) { %s } }", schema.InputEditGroup, group.ID,
	))
}

var (
	deleteUserDocument = mustDocument("DeleteUser",
		"mutation DeleteUser($input: DeleteUserInput!) { deleteUser(input: $input) }")
	deleteGroupDocument = mustDocument("DeleteGroup",
		"mutation DeleteGroup($input: DeleteGroupInput!) { deleteGroup(input: $input) }")
	addUserToGroupDocument = mustDocument("AddUserToGroup",
		"mutation AddUserToGroup($input: AddUserToGroupInput!) { addUserToGroup(input: $input) }")
	removeUserFromGroupDocument = mustDocument("RemoveUserFromGroup",
		"mutation RemoveUserFromGroup($input: RemoveUserFromGroupInput!) { removeUserFromGroup(input: $input) }")

	introspectTypeDocument = mustDocument("IntrospectType", `query IntrospectType($name: String!) {
  __type(name: $name) {
    name
    fields {
      name
      type { kind name ofType { kind name ofType { kind name ofType { kind name } } } }
    }
  }
}`)
	introspectInputDocument = mustDocument("IntrospectInput", `query IntrospectInput($name: String!) {
  __type(name: $name) {
    name
    inputFields {
      name
      type { kind name ofType { kind name ofType { kind name ofType { kind name } } } }
    }
  }
}`)
	pingDocument = mustDocument("Ping", "query Ping { __typename }")
)

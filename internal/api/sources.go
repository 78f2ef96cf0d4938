package api

import (
	"context"

	"github.com/brokeneck/brokeneck/cli/internal/schema"
)

// UserSource loads and mutates one kind of record: users, with groups as
// their relations. It satisfies entity.DataSource and entity.MutationGateway.
type UserSource struct {
	client *Client
	user   schema.Selection
	group  schema.Selection
}

// NewUserSource binds the client to the user and group selections.
func NewUserSource(client *Client, user, group schema.Selection) *UserSource {
	return &UserSource{client: client, user: user, group: group}
}

func (s *UserSource) Query(ctx context.Context, id string) (schema.Record, error) {
	return s.client.LoadUser(ctx, id, s.user, s.group)
}

func (s *UserSource) Delete(ctx context.Context, id string) error {
	return s.client.DeleteUser(ctx, id)
}

func (s *UserSource) Edit(ctx context.Context, id string, fields map[string]any) error {
	return s.client.EditUser(ctx, s.user, id, fields)
}

func (s *UserSource) AddRelation(ctx context.Context, userID, groupID string) error {
	return s.client.AddUserToGroup(ctx, userID, groupID)
}

func (s *UserSource) RemoveRelation(ctx context.Context, userID, groupID string) error {
	return s.client.RemoveUserFromGroup(ctx, userID, groupID)
}

// List returns users matching search.
func (s *UserSource) List(ctx context.Context, search string, max int) ([]schema.Record, error) {
	return s.client.ListUsers(ctx, s.user, search, max)
}

// Candidates lists the groups a user could be added to.
func (s *UserSource) Candidates(ctx context.Context, search string, max int) ([]schema.Record, error) {
	return s.client.ListGroups(ctx, s.group, search, max)
}

// GroupSource is UserSource seen from the other side: groups, with their
// members as relations.
type GroupSource struct {
	client *Client
	group  schema.Selection
	user   schema.Selection
}

// NewGroupSource binds the client to the group and user selections.
func NewGroupSource(client *Client, group, user schema.Selection) *GroupSource {
	return &GroupSource{client: client, group: group, user: user}
}

func (s *GroupSource) Query(ctx context.Context, id string) (schema.Record, error) {
	return s.client.LoadGroup(ctx, id, s.group, s.user)
}

func (s *GroupSource) Delete(ctx context.Context, id string) error {
	return s.client.DeleteGroup(ctx, id)
}

func (s *GroupSource) Edit(ctx context.Context, id string, fields map[string]any) error {
	return s.client.EditGroup(ctx, s.group, id, fields)
}

func (s *GroupSource) AddRelation(ctx context.Context, groupID, userID string) error {
	return s.client.AddUserToGroup(ctx, userID, groupID)
}

func (s *GroupSource) RemoveRelation(ctx context.Context, groupID, userID string) error {
	return s.client.RemoveUserFromGroup(ctx, userID, groupID)
}

// List returns groups matching search.
func (s *GroupSource) List(ctx context.Context, search string, max int) ([]schema.Record, error) {
	return s.client.ListGroups(ctx, s.group, search, max)
}

// Candidates lists the users that could join a group.
func (s *GroupSource) Candidates(ctx context.Context, search string, max int) ([]schema.Record, error) {
	return s.client.ListUsers(ctx, s.user, search, max)
}

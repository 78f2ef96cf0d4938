package api

import (
	"context"

	"github.com/brokeneck/brokeneck/cli/internal/schema"
)

// --- Group Methods ---

// LoadGroup returns the group with its members, or nil when it does not exist.
func (c *Client) LoadGroup(ctx context.Context, id string, group, user schema.Selection) (schema.Record, error) {
	doc, err := LoadGroupDocument(group, user)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Group schema.Record `json:"group"`
	}
	if err := c.do(ctx, doc, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	return resp.Group, nil
}

// ListGroups searches groups.
func (c *Client) ListGroups(ctx context.Context, group schema.Selection, search string, max int) ([]schema.Record, error) {
	doc, err := ListGroupsDocument(group)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Groups pagedRecords `json:"groups"`
	}
	if err := c.do(ctx, doc, listVariables(search, max), &resp); err != nil {
		return nil, err
	}
	return resp.Groups.Data, nil
}

// EditGroup updates the given fields of a group.
func (c *Client) EditGroup(ctx context.Context, group schema.Selection, id string, fields map[string]any) error {
	doc, err := EditGroupDocument(group)
	if err != nil {
		return err
	}
	return c.do(ctx, doc, map[string]any{"input": editInput(group.ID, id, fields)}, nil)
}

// DeleteGroup deletes a group.
func (c *Client) DeleteGroup(ctx context.Context, id string) error {
	return c.do(ctx, deleteGroupDocument, map[string]any{"input": DeleteInput{ID: id}}, nil)
}

// AddUserToGroup makes the user a member of the group.
func (c *Client) AddUserToGroup(ctx context.Context, userID, groupID string) error {
	return c.do(ctx, addUserToGroupDocument, map[string]any{
		"input": MembershipInput{UserID: userID, GroupID: groupID},
	}, nil)
}

// RemoveUserFromGroup ends the user's membership of the group.
func (c *Client) RemoveUserFromGroup(ctx context.Context, userID, groupID string) error {
	return c.do(ctx, removeUserFromGroupDocument, map[string]any{
		"input": MembershipInput{UserID: userID, GroupID: groupID},
	}, nil)
}

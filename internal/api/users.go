package api

import (
	"context"

	"github.com/brokeneck/brokeneck/cli/internal/schema"
)

// --- User Methods ---

// LoadUser returns the user with its groups, or nil when it does not exist.
func (c *Client) LoadUser(ctx context.Context, id string, user, group schema.Selection) (schema.Record, error) {
	doc, err := LoadUserDocument(user, group)
	if err != nil {
		return nil, err
	}
	var resp struct {
		User schema.Record `json:"user"`
	}
	if err := c.do(ctx, doc, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// ListUsers searches users. An empty search lists the first page.
func (c *Client) ListUsers(ctx context.Context, user schema.Selection, search string, max int) ([]schema.Record, error) {
	doc, err := ListUsersDocument(user)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Users pagedRecords `json:"users"`
	}
	if err := c.do(ctx, doc, listVariables(search, max), &resp); err != nil {
		return nil, err
	}
	return resp.Users.Data, nil
}

// EditUser updates the given fields of a user.
func (c *Client) EditUser(ctx context.Context, user schema.Selection, id string, fields map[string]any) error {
	doc, err := EditUserDocument(user)
	if err != nil {
		return err
	}
	return c.do(ctx, doc, map[string]any{"input": editInput(user.ID, id, fields)}, nil)
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, deleteUserDocument, map[string]any{"input": DeleteInput{ID: id}}, nil)
}

func listVariables(search string, max int) map[string]any {
	vars := map[string]any{}
	if search != "" {
		vars["search"] = search
	}
	if max > 0 {
		vars["max"] = max
	}
	return vars
}

func editInput(idField, id string, fields map[string]any) map[string]any {
	input := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		input[k] = v
	}
	input[idField] = id
	return input
}

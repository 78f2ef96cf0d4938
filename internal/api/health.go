package api

import (
	"context"
	"fmt"

	"github.com/brokeneck/brokeneck/cli/internal/schema"
)

// Ping checks that the GraphQL endpoint answers and accepts the credentials.
func (c *Client) Ping(ctx context.Context) error {
	var resp struct {
		Typename string `json:"__typename"`
	}
	if err := c.do(ctx, pingDocument, nil, &resp); err != nil {
		return err
	}
	if resp.Typename == "" {
		return fmt.Errorf("ping: empty response")
	}
	return nil
}

// IntrospectType lists the fields of a GraphQL object type. It implements
// schema.Introspector.
func (c *Client) IntrospectType(ctx context.Context, name string) ([]schema.FieldInfo, error) {
	var resp struct {
		Type *introspectedType `json:"__type"`
	}
	if err := c.do(ctx, introspectTypeDocument, map[string]any{"name": name}, &resp); err != nil {
		return nil, err
	}
	if resp.Type == nil {
		return nil, fmt.Errorf("type %s: %w", name, ErrNotFound)
	}
	return fieldInfos(resp.Type.Fields), nil
}

// IntrospectInput lists the fields of a GraphQL input object type. It
// implements schema.Introspector.
func (c *Client) IntrospectInput(ctx context.Context, name string) ([]schema.FieldInfo, error) {
	var resp struct {
		Type *introspectedType `json:"__type"`
	}
	if err := c.do(ctx, introspectInputDocument, map[string]any{"name": name}, &resp); err != nil {
		return nil, err
	}
	if resp.Type == nil || len(resp.Type.InputFields) == 0 {
		return nil, fmt.Errorf("input %s: %w", name, ErrNotFound)
	}
	return fieldInfos(resp.Type.InputFields), nil
}

// Package session resolves the field selections of the backend once and
// binds each entity kind to its GraphQL source.
package session

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/brokeneck/brokeneck/cli/internal/api"
	"github.com/brokeneck/brokeneck/cli/internal/entity"
	"github.com/brokeneck/brokeneck/cli/internal/logging"
	"github.com/brokeneck/brokeneck/cli/internal/schema"
)

// Backend is everything a front-end needs from one kind's source.
type Backend interface {
	entity.DataSource
	entity.MutationGateway
	List(ctx context.Context, search string, max int) ([]schema.Record, error)
	Candidates(ctx context.Context, search string, max int) ([]schema.Record, error)
}

// Binding pairs a kind with its backend.
type Binding struct {
	Kind    entity.Kind
	Backend Backend
}

// Session holds the bindings for users and groups.
type Session struct {
	Client *api.Client
	Log    logrus.FieldLogger
	Users  Binding
	Groups Binding
}

// New resolves the User and Group selections and edit inputs and builds the
// bindings.
func New(ctx context.Context, client *api.Client, overrides map[string]schema.Override, log logrus.FieldLogger) (*Session, error) {
	if log == nil {
		log = logging.Discard()
	}
	reg := schema.NewRegistry(client, overrides, log)

	user, err := reg.Resolve(ctx, schema.TypeUser)
	if err != nil {
		return nil, fmt.Errorf("resolve user fields: %w", err)
	}
	group, err := reg.Resolve(ctx, schema.TypeGroup)
	if err != nil {
		return nil, fmt.Errorf("resolve group fields: %w", err)
	}
	userInput := reg.ResolveInput(ctx, schema.InputEditUser)
	groupInput := reg.ResolveInput(ctx, schema.InputEditGroup)
	log.WithFields(logrus.Fields{
		"user":       user.All(),
		"group":      group.All(),
		"user_edit":  userInput.Names(),
		"group_edit": groupInput.Names(),
	}).Debug("field selections resolved")

	return &Session{
		Client: client,
		Log:    log,
		Users: Binding{
			Kind:    entity.UserKind(user, group).WithEditInput(userInput),
			Backend: api.NewUserSource(client, user, group),
		},
		Groups: Binding{
			Kind:    entity.GroupKind(group, user).WithEditInput(groupInput),
			Backend: api.NewGroupSource(client, group, user),
		},
	}, nil
}

// Controller creates a controller for one entity of the binding's kind.
func (s *Session) Controller(b Binding, id string, gate entity.ConfirmationGate, nav entity.Navigator) *entity.Controller {
	return entity.New(b.Kind, id, b.Backend, b.Backend, gate, nav, entity.WithLogger(s.Log))
}

// Binding returns the binding for a kind name ("user", "users", "group", ...).
func (s *Session) Binding(name string) (Binding, error) {
	switch name {
	case "user", "users", "User", "Users":
		return s.Users, nil
	case "group", "groups", "Group", "Groups":
		return s.Groups, nil
	}
	return Binding{}, fmt.Errorf("unknown kind %q", name)
}

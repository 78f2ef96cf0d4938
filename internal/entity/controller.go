// Package entity coordinates viewing and mutating a single user or group:
// load by id, confirm destructive actions, mutate, then resynchronise.
package entity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/brokeneck/brokeneck/cli/internal/logging"
	"github.com/brokeneck/brokeneck/cli/internal/schema"
)

// --- Collaborators ---

// DataSource loads the raw record of an entity. A nil record with a nil
// error means the entity does not exist.
type DataSource interface {
	Query(ctx context.Context, id string) (schema.Record, error)
}

// MutationGateway executes mutations against the backend.
type MutationGateway interface {
	Delete(ctx context.Context, id string) error
	Edit(ctx context.Context, id string, fields map[string]any) error
	AddRelation(ctx context.Context, id, relationID string) error
	RemoveRelation(ctx context.Context, id, relationID string) error
}

// ConfirmationGate asks the operator a yes/no question and blocks until answered.
type ConfirmationGate interface {
	Ask(ctx context.Context, p Prompt) (bool, error)
}

// Navigator leaves the current view.
type Navigator interface {
	Back()
}

// RefreshFunc reloads the entity.
type RefreshFunc func(ctx context.Context) error

// Editor performs an edit of the current entity and refreshes on success.
type Editor interface {
	Edit(ctx context.Context, current Entity, refresh RefreshFunc) error
}

// GateFunc adapts a function to ConfirmationGate.
type GateFunc func(ctx context.Context, p Prompt) (bool, error)

func (f GateFunc) Ask(ctx context.Context, p Prompt) (bool, error) { return f(ctx, p) }

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func()

func (f NavigatorFunc) Back() { f() }

// EditorFunc adapts a function to Editor.
type EditorFunc func(ctx context.Context, current Entity, refresh RefreshFunc) error

func (f EditorFunc) Edit(ctx context.Context, current Entity, refresh RefreshFunc) error {
	return f(ctx, current, refresh)
}

// --- State ---

// State is the controller's action state.
type State int

const (
	Idle State = iota
	ConfirmPending
	Mutating
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ConfirmPending:
		return "confirm-pending"
	case Mutating:
		return "mutating"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Outcome is the result of an operator action.
type Outcome int

const (
	// Cancelled means nothing was sent to the backend.
	Cancelled Outcome = iota
	// Applied means the mutation succeeded.
	Applied
	// Failed means the mutation was attempted and rejected.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Cancelled:
		return "cancelled"
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// ActionKind names an operator intent.
type ActionKind string

const (
	ActionRemoveRelation ActionKind = "remove-relation"
	ActionAddRelation    ActionKind = "add-relation"
	ActionEdit           ActionKind = "edit"
	ActionDelete         ActionKind = "delete"
)

// PendingAction is the action between trigger and completion.
type PendingAction struct {
	Kind       ActionKind
	RelationID string
}

// Snapshot is a copy of what the controller currently knows.
type Snapshot struct {
	Loaded  bool
	Loading bool
	Entity  Entity
	Err     error
}

// Relations returns the relations of the loaded entity, or none before load.
func (s Snapshot) Relations() []Relation {
	if !s.Loaded {
		return []Relation{}
	}
	out := make([]Relation, len(s.Entity.Relations))
	copy(out, s.Entity.Relations)
	return out
}

// --- Controller ---

// Controller drives one entity detail view. Actions run one at a time.
type Controller struct {
	kind    Kind
	id      string
	source  DataSource
	gateway MutationGateway
	gate    ConfirmationGate
	nav     Navigator
	log     logrus.FieldLogger

	mu      sync.Mutex
	state   State
	pending *PendingAction
	snap    Snapshot
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for mutations.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a controller for the entity id of the given kind.
func New(kind Kind, id string, source DataSource, gateway MutationGateway, gate ConfirmationGate, nav Navigator, opts ...Option) *Controller {
	c := &Controller{
		kind:    kind,
		id:      id,
		source:  source,
		gateway: gateway,
		gate:    gate,
		nav:     nav,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithFields(logrus.Fields{"kind": kind.Lower(), "id": id})
	return c
}

// ID returns the entity id.
func (c *Controller) ID() string { return c.id }

// Kind returns the entity kind.
func (c *Controller) Kind() Kind { return c.kind }

// State returns the current action state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending returns the in-flight action, if any.
func (c *Controller) Pending() (PendingAction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return PendingAction{}, false
	}
	return *c.pending, true
}

// Snapshot returns a copy of the current entity state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Load queries the data source and replaces the snapshot. A failed load keeps
// the previous entity and records the error.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.state == Terminated {
		c.mu.Unlock()
		return ErrTerminated
	}
	c.snap.Loading = true
	c.mu.Unlock()

	rec, err := c.source.Query(ctx, c.id)
	if err == nil && rec == nil {
		err = fmt.Errorf("%s %s: %w", c.kind.Lower(), c.id, ErrNotFound)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Terminated {
		return ErrTerminated
	}
	c.snap.Loading = false
	if err != nil {
		c.snap.Err = err
		return fmt.Errorf("load %s: %w", c.kind.Lower(), err)
	}
	c.snap = Snapshot{Loaded: true, Entity: c.kind.Project(rec)}
	return nil
}

// RemoveRelation asks for confirmation, removes the relation and reloads.
// The relation stays visible until the reload confirms its removal.
func (c *Controller) RemoveRelation(ctx context.Context, relationID string) (Outcome, error) {
	if err := c.begin(PendingAction{Kind: ActionRemoveRelation, RelationID: relationID}, ConfirmPending, true); err != nil {
		return Cancelled, err
	}
	defer c.finish(Idle)

	ok, err := c.gate.Ask(ctx, c.kind.RemoveRelationPrompt)
	if err != nil {
		return Cancelled, fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		c.log.WithField("relation", relationID).Debug("remove relation declined")
		return Cancelled, nil
	}

	c.setState(Mutating)
	if err := c.gateway.RemoveRelation(ctx, c.id, relationID); err != nil {
		return Failed, fmt.Errorf("remove %s from %s: %w", c.kind.Lower(), relationID, err)
	}
	c.log.WithField("relation", relationID).Info("relation removed")

	if err := c.Load(ctx); err != nil {
		return Applied, err
	}
	return Applied, nil
}

// AddRelation relates the entity to relationID and reloads. Picking the
// relation is the operator's confirmation.
func (c *Controller) AddRelation(ctx context.Context, relationID string) (Outcome, error) {
	if err := c.begin(PendingAction{Kind: ActionAddRelation, RelationID: relationID}, Mutating, false); err != nil {
		return Cancelled, err
	}
	defer c.finish(Idle)

	if err := c.gateway.AddRelation(ctx, c.id, relationID); err != nil {
		return Failed, fmt.Errorf("add %s to %s: %w", c.kind.Lower(), relationID, err)
	}
	c.log.WithField("relation", relationID).Info("relation added")

	if err := c.Load(ctx); err != nil {
		return Applied, err
	}
	return Applied, nil
}

// Delete asks for confirmation, deletes the entity and navigates back. The
// controller refuses every later load or action.
func (c *Controller) Delete(ctx context.Context) (Outcome, error) {
	if err := c.begin(PendingAction{Kind: ActionDelete}, ConfirmPending, false); err != nil {
		return Cancelled, err
	}

	ok, err := c.gate.Ask(ctx, c.kind.DeletePrompt)
	if err != nil {
		c.finish(Idle)
		return Cancelled, fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		c.finish(Idle)
		c.log.Debug("delete declined")
		return Cancelled, nil
	}

	c.setState(Mutating)
	if err := c.gateway.Delete(ctx, c.id); err != nil {
		c.finish(Idle)
		return Failed, fmt.Errorf("delete %s: %w", c.kind.Lower(), err)
	}
	c.finish(Terminated)
	c.log.Info("deleted")

	if c.nav != nil {
		c.nav.Back()
	}
	return Applied, nil
}

// Edit hands the current entity, keyed by the controller's id, to editor
// together with the controller's refresh callback. A reload that fails after
// the editor saved yields Applied with the error.
func (c *Controller) Edit(ctx context.Context, editor Editor) (Outcome, error) {
	if err := c.begin(PendingAction{Kind: ActionEdit}, Mutating, true); err != nil {
		return Cancelled, err
	}
	defer c.finish(Idle)

	current := c.Snapshot().Entity
	current.ID = c.id
	err := editor.Edit(ctx, current, c.refresh)
	if err != nil && !errors.Is(err, ErrRefresh) {
		return Failed, fmt.Errorf("edit %s: %w", c.kind.Lower(), err)
	}
	c.log.Info("edited")
	if err != nil {
		return Applied, err
	}
	return Applied, nil
}

// refresh is the reload handed to editors. Its errors wrap ErrRefresh so a
// failed reload is not mistaken for a failed edit.
func (c *Controller) refresh(ctx context.Context) error {
	if err := c.Load(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRefresh, err)
	}
	return nil
}

func (c *Controller) begin(action PendingAction, next State, needsData bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Terminated:
		return ErrTerminated
	case Idle:
	default:
		return ErrBusy
	}
	if needsData && !c.snap.Loaded {
		return ErrNotLoaded
	}
	if action.Kind == ActionRemoveRelation {
		if _, ok := c.snap.Entity.Relation(action.RelationID); !ok {
			return fmt.Errorf("%s %s: %w", c.kind.RelationName, action.RelationID, ErrUnknownRelation)
		}
	}

	c.state = next
	c.pending = &action
	return nil
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Controller) finish(s State) {
	c.mu.Lock()
	c.state = s
	c.pending = nil
	c.mu.Unlock()
}

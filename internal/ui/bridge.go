package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brokeneck/brokeneck/cli/internal/entity"
)

// confirmRequestMsg carries a question from a running action to the model.
// The action blocks until a value is sent on reply.
type confirmRequestMsg struct {
	prompt entity.Prompt
	reply  chan<- bool
}

// navigateBackMsg closes the detail view of a deleted entity.
type navigateBackMsg struct{}

// Bridge lets controller collaborators, which run inside tea.Cmd goroutines,
// talk to the update loop. The app keeps one Listen command outstanding.
// Once ctx is done, sends and listens give up.
type Bridge struct {
	ctx    context.Context
	events chan tea.Msg
}

// NewBridge creates a bridge with a small event buffer, bound to the
// program's lifetime.
func NewBridge(ctx context.Context) *Bridge {
	return &Bridge{ctx: ctx, events: make(chan tea.Msg, 4)}
}

// Listen returns a command that waits for the next event.
func (b *Bridge) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.events:
			return msg
		case <-b.ctx.Done():
			return nil
		}
	}
}

// Gate returns a ConfirmationGate answered through confirm dialogs.
func (b *Bridge) Gate() entity.ConfirmationGate {
	return entity.GateFunc(b.ask)
}

func (b *Bridge) ask(ctx context.Context, p entity.Prompt) (bool, error) {
	reply := make(chan bool, 1)
	select {
	case b.events <- confirmRequestMsg{prompt: p, reply: reply}:
	case <-ctx.Done():
		return false, ctx.Err()
	case <-b.ctx.Done():
		return false, b.ctx.Err()
	}
	select {
	case ok := <-reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	case <-b.ctx.Done():
		return false, b.ctx.Err()
	}
}

// Navigator returns a Navigator that closes the detail view. After the
// program is gone the request is dropped.
func (b *Bridge) Navigator() entity.Navigator {
	return entity.NavigatorFunc(func() {
		select {
		case b.events <- navigateBackMsg{}:
		case <-b.ctx.Done():
		}
	})
}

package ui

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/brokeneck/brokeneck/cli/internal/entity"
	"github.com/brokeneck/brokeneck/cli/internal/logging"
	"github.com/brokeneck/brokeneck/cli/internal/schema"
	"github.com/brokeneck/brokeneck/cli/internal/session"
	"github.com/brokeneck/brokeneck/cli/internal/ui/components"
)

var (
	testUserSel  = schema.MustSelection("User", "id", "email")
	testGroupSel = schema.MustSelection("Group", "id", "name")
)

// directory is the shared state behind both fake backends.
type directory struct {
	mu      sync.Mutex
	users   map[string]string
	groups  map[string]string
	members map[string]map[string]bool
	calls   []string
	queries []string
	edits   []map[string]any
}

func newDirectory() *directory {
	return &directory{
		users:   map[string]string{"u1": "u1@example.com", "u2": "u2@example.com"},
		groups:  map[string]string{"g1": "Admins", "g2": "Ops", "g3": "Support"},
		members: map[string]map[string]bool{"u1": {"g1": true, "g2": true}},
	}
}

func (d *directory) record(call string) {
	d.calls = append(d.calls, call)
}

func (d *directory) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

func (d *directory) Edits() []map[string]any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]map[string]any(nil), d.edits...)
}

func (d *directory) Queries() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.queries...)
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// userBackend implements session.Backend for users.
type userBackend struct{ d *directory }

func (b userBackend) Query(_ context.Context, id string) (schema.Record, error) {
	b.d.mu.Lock()
	defer b.d.mu.Unlock()
	email, ok := b.d.users[id]
	if !ok {
		return nil, nil
	}
	groups := []any{}
	for _, gid := range keys(b.d.members[id]) {
		groups = append(groups, map[string]any{"id": gid, "name": b.d.groups[gid]})
	}
	return schema.Record{"id": id, "email": email, "groups": groups}, nil
}

func (b userBackend) Delete(_ context.Context, id string) error {
	b.d.mu.Lock()
	defer b.d.mu.Unlock()
	b.d.record("delete " + id)
	delete(b.d.users, id)
	delete(b.d.members, id)
	return nil
}

func (b userBackend) Edit(_ context.Context, id string, fields map[string]any) error {
	b.d.mu.Lock()
	defer b.d.mu.Unlock()
	b.d.record("edit " + id)
	b.d.edits = append(b.d.edits, fields)
	if email, ok := fields["email"].(string); ok {
		b.d.users[id] = email
	}
	return nil
}

func (b userBackend) AddRelation(_ context.Context, id, groupID string) error {
	b.d.mu.Lock()
	defer b.d.mu.Unlock()
	b.d.record("add " + id + " " + groupID)
	if b.d.members[id] == nil {
		b.d.members[id] = map[string]bool{}
	}
	b.d.members[id][groupID] = true
	return nil
}

func (b userBackend) RemoveRelation(_ context.Context, id, groupID string) error {
	b.d.mu.Lock()
	defer b.d.mu.Unlock()
	b.d.record("remove " + id + " " + groupID)
	delete(b.d.members[id], groupID)
	return nil
}

func (b userBackend) List(_ context.Context, search string, _ int) ([]schema.Record, error) {
	b.d.mu.Lock()
	defer b.d.mu.Unlock()
	b.d.queries = append(b.d.queries, "users:"+search)
	var out []schema.Record
	for _, id := range keys(b.d.users) {
		if search == "" || strings.Contains(b.d.users[id], search) {
			out = append(out, schema.Record{"id": id, "email": b.d.users[id]})
		}
	}
	return out, nil
}

func (b userBackend) Candidates(_ context.Context, _ string, _ int) ([]schema.Record, error) {
	b.d.mu.Lock()
	defer b.d.mu.Unlock()
	var out []schema.Record
	for _, id := range keys(b.d.groups) {
		out = append(out, schema.Record{"id": id, "name": b.d.groups[id]})
	}
	return out, nil
}

// groupBackend lists groups; the tests only drive users in depth.
type groupBackend struct{ userBackend }

func (b groupBackend) List(_ context.Context, search string, _ int) ([]schema.Record, error) {
	b.d.mu.Lock()
	defer b.d.mu.Unlock()
	b.d.queries = append(b.d.queries, "groups:"+search)
	var out []schema.Record
	for _, id := range keys(b.d.groups) {
		out = append(out, schema.Record{"id": id, "name": b.d.groups[id]})
	}
	return out, nil
}

func testSession(d *directory) *session.Session {
	return &session.Session{
		Log: logging.Discard(),
		Users: session.Binding{
			Kind:    entity.UserKind(testUserSel, testGroupSel),
			Backend: userBackend{d: d},
		},
		Groups: session.Binding{
			Kind:    entity.GroupKind(testGroupSel, testUserSel),
			Backend: groupBackend{userBackend{d: d}},
		},
	}
}

// newUserDetail returns a loaded detail view of id wired to a fresh bridge.
func newUserDetail(t *testing.T, d *directory, id string) (DetailModel, *Bridge) {
	t.Helper()
	return newSessionDetail(t, testSession(d), id)
}

func newSessionDetail(t *testing.T, s *session.Session, id string) (DetailModel, *Bridge) {
	t.Helper()
	bridge := NewBridge(context.Background())
	ctrl := s.Controller(s.Users, id, bridge.Gate(), bridge.Navigator())
	m := NewDetailModel(context.Background(), ctrl, s.Users.Backend, false)
	m.width = 100
	m, _ = m.Update(m.Init()())
	return m, bridge
}

// async runs cmd in the background, as the bubbletea runtime would.
func async(cmd tea.Cmd) <-chan tea.Msg {
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	return out
}

func receive(t *testing.T, ch <-chan tea.Msg) tea.Msg {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		require.FailNow(t, "timed out waiting for message")
		return nil
	}
}

// nextEvent waits for the bridge to deliver a message.
func nextEvent(t *testing.T, b *Bridge) tea.Msg {
	t.Helper()
	return receive(t, async(b.Listen()))
}

func enterKey() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func escKey() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEsc} }
func downKey() tea.KeyMsg  { return tea.KeyMsg{Type: tea.KeyDown} }

// flatten drops box borders and collapses whitespace so text wrapped inside
// a dialog reads as one line.
func flatten(view string) string {
	view = strings.Map(func(r rune) rune {
		if strings.ContainsRune("│─╭╮╰╯", r) {
			return ' '
		}
		return r
	}, components.SanitizeText(view))
	return strings.Join(strings.Fields(view), " ")
}

package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brokeneck/brokeneck/cli/internal/schema"
	"github.com/brokeneck/brokeneck/cli/internal/session"
	"github.com/brokeneck/brokeneck/cli/internal/ui/components"
)

const listPageSize = 15

// --- Messages ---

type listLoadedMsg struct {
	kind    string
	query   string
	records []schema.Record
	err     error
}

type openDetailMsg struct {
	binding session.Binding
	id      string
}

// --- List Model ---

// ListModel lists the records of one kind and opens their detail view.
type ListModel struct {
	ctx     context.Context
	binding session.Binding
	records []schema.Record
	list    *components.List
	loading bool
	errText string

	searching bool
	searchBuf string
	query     string

	width int
	vim   bool
}

// NewListModel creates the list for a binding.
func NewListModel(ctx context.Context, b session.Binding, vim bool) ListModel {
	return ListModel{
		ctx:     ctx,
		binding: b,
		list:    components.NewList(listPageSize),
		vim:     vim,
	}
}

func (m ListModel) Init() tea.Cmd {
	return m.load(m.query)
}

// Reload fetches the records again with the current search.
func (m ListModel) Reload() (ListModel, tea.Cmd) {
	m.loading = true
	return m, m.load(m.query)
}

func (m ListModel) load(query string) tea.Cmd {
	kind := m.binding.Kind.Name
	backend := m.binding.Backend
	ctx := m.ctx
	return func() tea.Msg {
		records, err := backend.List(ctx, query, 100)
		return listLoadedMsg{kind: kind, query: query, records: records, err: err}
	}
}

// Searching reports whether the search prompt has focus.
func (m ListModel) Searching() bool {
	return m.searching
}

func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		if msg.kind != m.binding.Kind.Name || msg.query != m.query {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.records = msg.records
		m.list.Refresh(m.labels())
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKeys(msg)
		}
		return m.handleListKeys(msg)
	}
	return m, nil
}

func (m ListModel) handleListKeys(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch {
	case isUp(msg, m.vim):
		m.list.Up()
	case isDown(msg, m.vim):
		m.list.Down()
	case isKey(msg, "/"):
		m.searching = true
		m.searchBuf = m.query
	case isKey(msg, "r"):
		return m.Reload()
	case isEnter(msg):
		idx := m.list.Selected()
		if idx < 0 || idx >= len(m.records) {
			return m, nil
		}
		id := m.binding.Kind.Fields.IDOf(m.records[idx])
		b := m.binding
		return m, func() tea.Msg { return openDetailMsg{binding: b, id: id} }
	}
	return m, nil
}

func (m ListModel) handleSearchKeys(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.searching = false
		m.searchBuf = ""
	case isEnter(msg):
		m.searching = false
		m.query = strings.TrimSpace(m.searchBuf)
		m.list.SetItems(nil)
		return m.Reload()
	default:
		m.searchBuf, _ = editKey(m.searchBuf, msg)
	}
	return m, nil
}

func (m ListModel) labels() []string {
	sel := m.binding.Kind.Fields
	out := make([]string, len(m.records))
	for i, r := range m.records {
		out[i] = sel.IDOf(r)
	}
	return out
}

func (m ListModel) View() string {
	title := m.binding.Kind.Plural
	if m.searching {
		return components.Indent(components.InputDialog("Search "+strings.ToLower(title), m.searchBuf), 1)
	}
	if m.errText != "" {
		return components.Indent(components.ErrorBox("Could not load "+strings.ToLower(title), m.errText, m.width), 1)
	}
	if m.loading && len(m.records) == 0 {
		return "  " + MutedStyle.Render("Loading "+strings.ToLower(title)+"...")
	}
	if len(m.records) == 0 {
		return components.Indent(components.TitledBox(title, MutedStyle.Render("No "+strings.ToLower(title)+" found."), m.width), 1)
	}

	summary := fmt.Sprintf("%d shown", len(m.records))
	if m.query != "" {
		summary += " · search: " + m.query
	}
	body := MutedStyle.Render(summary) + "\n\n" + m.renderGrid()
	return components.Indent(components.TitledBox(title, body, m.width), 1)
}

func (m ListModel) renderGrid() string {
	sel := m.binding.Kind.Fields
	names := sel.All()
	if len(names) > 3 {
		names = names[:3]
	}
	width := components.BoxContentWidth(m.width)
	if width <= 0 {
		width = 60
	}
	colWidth := max((width-2)/len(names)-1, 4)
	cols := make([]components.TableColumn, len(names))
	for i, name := range names {
		cols[i] = components.TableColumn{Header: name, Width: colWidth}
	}

	visible := m.list.Visible()
	rows := make([][]string, 0, len(visible))
	active := -1
	for i := range visible {
		abs := m.list.RelToAbs(i)
		rec := m.records[abs]
		row := make([]string, len(names))
		for j, name := range names {
			row[j] = schema.FormatValue(rec[name])
		}
		rows = append(rows, row)
		if m.list.IsSelected(abs) {
			active = i
		}
	}
	return components.TableGrid(cols, rows, width, active)
}

func (m ListModel) hints() []components.KeyHint {
	if m.searching {
		return []components.KeyHint{{Key: "enter", Desc: "search"}, {Key: "esc", Desc: "cancel"}}
	}
	return []components.KeyHint{
		{Key: "↑/↓", Desc: "move"},
		{Key: "enter", Desc: "open"},
		{Key: "/", Desc: "search"},
		{Key: "r", Desc: "reload"},
		{Key: "1/2", Desc: "tabs"},
		{Key: "q", Desc: "quit"},
	}
}

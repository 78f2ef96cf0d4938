package ui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brokeneck/brokeneck/cli/internal/entity"
	"github.com/brokeneck/brokeneck/cli/internal/schema"
	"github.com/brokeneck/brokeneck/cli/internal/session"
	"github.com/brokeneck/brokeneck/cli/internal/ui/components"
)

// --- Messages ---

type detailLoadedMsg struct {
	id  string
	err error
}

type actionDoneMsg struct {
	id      string
	action  entity.ActionKind
	outcome entity.Outcome
	err     error
}

type candidatesLoadedMsg struct {
	id      string
	records []schema.Record
	err     error
}

// --- View States ---

type detailMode int

const (
	detailModeView detailMode = iota
	detailModePick
	detailModeEdit
	detailModeInput
)

// --- Detail Model ---

// DetailModel shows one entity with its relations and drives its controller.
type DetailModel struct {
	ctx     context.Context
	ctrl    *entity.Controller
	backend session.Backend
	relList *components.List
	mode    detailMode
	vim     bool
	width   int

	running bool
	confirm *confirmRequestMsg
	notice  string
	errText string

	// add relation
	candidates  []schema.Record
	pickList    *components.List
	pickLoading bool

	// edit
	editList  *components.List
	editField string
	editBuf   string
	edits     map[string]string
}

// NewDetailModel creates the detail view for a controller.
func NewDetailModel(ctx context.Context, ctrl *entity.Controller, backend session.Backend, vim bool) DetailModel {
	return DetailModel{
		ctx:      ctx,
		ctrl:     ctrl,
		backend:  backend,
		relList:  components.NewList(10),
		pickList: components.NewList(10),
		editList: components.NewList(10),
		vim:      vim,
	}
}

func (m DetailModel) Init() tea.Cmd {
	return m.load()
}

func (m DetailModel) load() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return detailLoadedMsg{id: ctrl.ID(), err: ctrl.Load(ctx)}
	}
}

// busy reports whether an action is running or waiting for an answer.
func (m DetailModel) busy() bool {
	return m.running || m.ctrl.State() != entity.Idle
}

// CanClose reports whether esc may leave the view.
func (m DetailModel) CanClose() bool {
	return !m.busy() && m.mode == detailModeView
}

// Typing reports whether keys go to a text input.
func (m DetailModel) Typing() bool {
	return m.mode == detailModeInput
}

func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		if msg.id != m.ctrl.ID() {
			return m, nil
		}
		if msg.err != nil && !errors.Is(msg.err, entity.ErrTerminated) {
			m.errText = msg.err.Error()
		}
		m.syncRelations()
		return m, nil

	case actionDoneMsg:
		if msg.id != m.ctrl.ID() {
			return m, nil
		}
		m.running = false
		m.confirm = nil
		m.notice = actionNotice(m.ctrl.Kind(), msg.action, msg.outcome)
		m.errText = ""
		if msg.err != nil {
			m.errText = msg.err.Error()
		}
		if msg.action == entity.ActionEdit && msg.outcome == entity.Applied {
			m.mode = detailModeView
			m.edits = nil
		}
		m.syncRelations()
		return m, nil

	case candidatesLoadedMsg:
		if msg.id != m.ctrl.ID() || m.mode != detailModePick {
			return m, nil
		}
		m.pickLoading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			m.mode = detailModeView
			return m, nil
		}
		m.candidates = m.excludeRelated(msg.records)
		sel := m.ctrl.Kind().RelationFields
		labels := make([]string, len(m.candidates))
		for i, r := range m.candidates {
			labels[i] = sel.IDOf(r)
		}
		m.pickList.SetItems(labels)
		return m, nil

	case confirmRequestMsg:
		m.confirm = &msg
		return m, nil

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.handleConfirmKeys(msg), nil
		}
		switch m.mode {
		case detailModePick:
			return m.handlePickKeys(msg)
		case detailModeEdit:
			return m.handleEditKeys(msg)
		case detailModeInput:
			return m.handleInputKeys(msg), nil
		default:
			return m.handleViewKeys(msg)
		}
	}
	return m, nil
}

func (m DetailModel) handleConfirmKeys(msg tea.KeyMsg) DetailModel {
	switch {
	case isYes(msg):
		m.confirm.reply <- true
		m.confirm = nil
	case isNo(msg):
		m.confirm.reply <- false
		m.confirm = nil
	}
	return m
}

func (m DetailModel) handleViewKeys(msg tea.KeyMsg) (DetailModel, tea.Cmd) {
	switch {
	case isUp(msg, m.vim):
		m.relList.Up()
		return m, nil
	case isDown(msg, m.vim):
		m.relList.Down()
		return m, nil
	case isKey(msg, "r"):
		if m.busy() {
			return m.refuse(), nil
		}
		m.errText = ""
		return m, m.load()
	case isKey(msg, "x"):
		rel, ok := m.selectedRelation()
		if !ok {
			return m, nil
		}
		return m.run(entity.ActionRemoveRelation, func(ctx context.Context) (entity.Outcome, error) {
			return m.ctrl.RemoveRelation(ctx, rel.ID)
		})
	case isKey(msg, "d"):
		return m.run(entity.ActionDelete, m.ctrl.Delete)
	case isKey(msg, "a"):
		if m.busy() {
			return m.refuse(), nil
		}
		if !m.ctrl.Snapshot().Loaded {
			m.errText = entity.ErrNotLoaded.Error()
			return m, nil
		}
		m.mode = detailModePick
		m.pickLoading = true
		m.candidates = nil
		m.pickList.SetItems(nil)
		return m, m.loadCandidates()
	case isKey(msg, "e"):
		if m.busy() {
			return m.refuse(), nil
		}
		if !m.ctrl.Snapshot().Loaded {
			m.errText = entity.ErrNotLoaded.Error()
			return m, nil
		}
		m.mode = detailModeEdit
		m.edits = map[string]string{}
		m.editList.SetItems(m.ctrl.Kind().Editable())
		return m, nil
	}
	return m, nil
}

func (m DetailModel) handlePickKeys(msg tea.KeyMsg) (DetailModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.mode = detailModeView
	case isUp(msg, m.vim):
		m.pickList.Up()
	case isDown(msg, m.vim):
		m.pickList.Down()
	case isEnter(msg):
		idx := m.pickList.Selected()
		if idx < 0 || idx >= len(m.candidates) {
			return m, nil
		}
		relationID := m.ctrl.Kind().RelationFields.IDOf(m.candidates[idx])
		m.mode = detailModeView
		return m.run(entity.ActionAddRelation, func(ctx context.Context) (entity.Outcome, error) {
			return m.ctrl.AddRelation(ctx, relationID)
		})
	}
	return m, nil
}

func (m DetailModel) handleEditKeys(msg tea.KeyMsg) (DetailModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.mode = detailModeView
		m.edits = nil
	case isUp(msg, m.vim):
		m.editList.Up()
	case isDown(msg, m.vim):
		m.editList.Down()
	case isEnter(msg):
		idx := m.editList.Selected()
		if idx < 0 {
			return m, nil
		}
		m.editField = m.editList.Items[idx]
		m.editBuf = m.fieldValue(m.editField)
		m.mode = detailModeInput
	case isKey(msg, "s"):
		if len(m.edits) == 0 {
			m.notice = "Nothing to save"
			return m, nil
		}
		values := make(map[string]any, len(m.edits))
		for k, v := range m.edits {
			values[k] = v
		}
		editor, err := entity.NewFieldEditor(m.ctrl.Kind(), m.backend, values)
		if err != nil {
			m.errText = err.Error()
			return m, nil
		}
		return m.run(entity.ActionEdit, func(ctx context.Context) (entity.Outcome, error) {
			return m.ctrl.Edit(ctx, editor)
		})
	}
	return m, nil
}

func (m DetailModel) handleInputKeys(msg tea.KeyMsg) DetailModel {
	switch {
	case isBack(msg):
		m.mode = detailModeEdit
	case isEnter(msg):
		current := ""
		for _, f := range m.ctrl.Snapshot().Entity.Fields {
			if f.Name == m.editField {
				current = f.Value
			}
		}
		if m.editBuf == current {
			delete(m.edits, m.editField)
		} else {
			m.edits[m.editField] = m.editBuf
		}
		m.mode = detailModeEdit
	default:
		m.editBuf, _ = editKey(m.editBuf, msg)
	}
	return m
}

// run starts an action on the controller unless one is already in flight.
func (m DetailModel) run(kind entity.ActionKind, action func(context.Context) (entity.Outcome, error)) (DetailModel, tea.Cmd) {
	if m.busy() {
		return m.refuse(), nil
	}
	m.running = true
	m.notice = ""
	m.errText = ""
	id, ctx := m.ctrl.ID(), m.ctx
	return m, func() tea.Msg {
		outcome, err := action(ctx)
		return actionDoneMsg{id: id, action: kind, outcome: outcome, err: err}
	}
}

func (m DetailModel) refuse() DetailModel {
	m.errText = entity.ErrBusy.Error()
	return m
}

func (m DetailModel) loadCandidates() tea.Cmd {
	backend, ctx, id := m.backend, m.ctx, m.ctrl.ID()
	return func() tea.Msg {
		records, err := backend.Candidates(ctx, "", 100)
		return candidatesLoadedMsg{id: id, records: records, err: err}
	}
}

func (m DetailModel) excludeRelated(records []schema.Record) []schema.Record {
	sel := m.ctrl.Kind().RelationFields
	snap := m.ctrl.Snapshot()
	out := make([]schema.Record, 0, len(records))
	for _, r := range records {
		if _, related := snap.Entity.Relation(sel.IDOf(r)); !related {
			out = append(out, r)
		}
	}
	return out
}

func (m *DetailModel) syncRelations() {
	rels := m.ctrl.Snapshot().Relations()
	labels := make([]string, len(rels))
	for i, r := range rels {
		labels[i] = r.ID
	}
	m.relList.Refresh(labels)
}

func (m DetailModel) selectedRelation() (entity.Relation, bool) {
	rels := m.ctrl.Snapshot().Relations()
	idx := m.relList.Selected()
	if idx < 0 || idx >= len(rels) {
		return entity.Relation{}, false
	}
	return rels[idx], true
}

func (m DetailModel) fieldValue(name string) string {
	if v, ok := m.edits[name]; ok {
		return v
	}
	for _, f := range m.ctrl.Snapshot().Entity.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

func actionNotice(kind entity.Kind, action entity.ActionKind, outcome entity.Outcome) string {
	switch outcome {
	case entity.Cancelled:
		return "Cancelled"
	case entity.Failed:
		return ""
	}
	switch action {
	case entity.ActionRemoveRelation:
		return kind.RelationName + " removed"
	case entity.ActionAddRelation:
		return kind.RelationName + " added"
	case entity.ActionEdit:
		return kind.Name + " saved"
	case entity.ActionDelete:
		return kind.Name + " deleted"
	}
	return ""
}

// --- Rendering ---

func (m DetailModel) View() string {
	if m.confirm != nil {
		p := m.confirm.prompt
		return components.Indent(components.ConfirmDialog(p.Title, p.Text, p.Action), 1)
	}
	switch m.mode {
	case detailModePick:
		return components.Indent(m.renderPick(), 1)
	case detailModeEdit:
		return components.Indent(m.renderEdit(), 1)
	case detailModeInput:
		return components.Indent(components.InputDialog("Edit "+m.editField, m.editBuf), 1)
	}

	sections := []string{m.renderFields(), m.renderRelations()}
	if m.notice != "" {
		sections = append(sections, "  "+SuccessStyle.Render(m.notice))
	}
	if m.errText != "" {
		sections = append(sections, components.ErrorBox("Error", m.errText, m.width))
	}
	return components.Indent(strings.Join(sections, "\n\n"), 1)
}

func (m DetailModel) renderFields() string {
	kind := m.ctrl.Kind()
	snap := m.ctrl.Snapshot()
	if !snap.Loaded {
		return components.TitledBox(kind.Name, MutedStyle.Render("Loading..."), m.width)
	}
	rows := make([]components.TableRow, 0, len(snap.Entity.Fields))
	for _, f := range snap.Entity.Fields {
		rows = append(rows, components.TableRow{Label: f.Name, Value: f.Value})
	}
	return components.Table(kind.Name+": "+snap.Entity.Description, rows, m.width)
}

func (m DetailModel) renderRelations() string {
	kind := m.ctrl.Kind()
	title := kind.RelationName + "s"
	rels := m.ctrl.Snapshot().Relations()
	if len(rels) == 0 {
		return components.TitledBox(title, MutedStyle.Render("No "+strings.ToLower(title)), m.width)
	}
	lines := make([]string, 0, len(rels))
	for i, r := range m.relList.Visible() {
		abs := m.relList.RelToAbs(i)
		label := fmt.Sprintf("%s  %s", r, components.SanitizeOneLine(rels[abs].Description))
		if m.relList.IsSelected(abs) {
			lines = append(lines, SelectedStyle.Render("> "+label))
		} else {
			lines = append(lines, NormalStyle.Render("  "+label))
		}
	}
	return components.TitledBox(title, strings.Join(lines, "\n"), m.width)
}

func (m DetailModel) renderPick() string {
	kind := m.ctrl.Kind()
	title := "Add " + strings.ToLower(kind.RelationName)
	if m.pickLoading {
		return components.TitledBox(title, MutedStyle.Render("Loading..."), m.width)
	}
	if len(m.candidates) == 0 {
		return components.TitledBox(title, MutedStyle.Render("Nothing left to add"), m.width)
	}
	sel := kind.RelationFields
	lines := make([]string, 0, len(m.candidates))
	for i := range m.pickList.Visible() {
		abs := m.pickList.RelToAbs(i)
		rec := m.candidates[abs]
		label := fmt.Sprintf("%s  %s", sel.IDOf(rec), components.SanitizeOneLine(sel.DescriptionOf(rec)))
		if m.pickList.IsSelected(abs) {
			lines = append(lines, SelectedStyle.Render("> "+label))
		} else {
			lines = append(lines, NormalStyle.Render("  "+label))
		}
	}
	return components.TitledBox(title, strings.Join(lines, "\n"), m.width)
}

func (m DetailModel) renderEdit() string {
	kind := m.ctrl.Kind()
	rows := make([]components.TableRow, 0, len(m.editList.Items))
	for i, name := range m.editList.Items {
		label := "  " + name
		if m.editList.IsSelected(i) {
			label = "> " + name
		}
		rows = append(rows, components.TableRow{Label: label, Value: m.fieldValue(name)})
	}
	out := components.Table("Edit "+strings.ToLower(kind.Name), rows, m.width)
	if len(m.edits) > 0 {
		names := make([]string, 0, len(m.edits))
		for name := range m.edits {
			names = append(names, name)
		}
		sort.Strings(names)
		diffs := make([]components.DiffRow, 0, len(names))
		current := map[string]string{}
		for _, f := range m.ctrl.Snapshot().Entity.Fields {
			current[f.Name] = f.Value
		}
		for _, name := range names {
			diffs = append(diffs, components.DiffRow{Label: name, From: current[name], To: m.edits[name]})
		}
		out += "\n\n" + components.DiffTable("Changes", diffs, m.width)
	}
	if m.errText != "" {
		out += "\n\n" + components.ErrorBox("Error", m.errText, m.width)
	}
	return out
}

func (m DetailModel) hints() []components.KeyHint {
	switch {
	case m.confirm != nil:
		return []components.KeyHint{{Key: "y", Desc: "confirm"}, {Key: "n", Desc: "cancel"}}
	case m.mode == detailModePick:
		return []components.KeyHint{{Key: "enter", Desc: "add"}, {Key: "esc", Desc: "back"}}
	case m.mode == detailModeEdit:
		return []components.KeyHint{{Key: "enter", Desc: "change"}, {Key: "s", Desc: "save"}, {Key: "esc", Desc: "discard"}}
	case m.mode == detailModeInput:
		return []components.KeyHint{{Key: "enter", Desc: "keep"}, {Key: "esc", Desc: "back"}}
	}
	kind := m.ctrl.Kind()
	return []components.KeyHint{
		{Key: "↑/↓", Desc: "move"},
		{Key: "x", Desc: "remove " + strings.ToLower(kind.RelationName)},
		{Key: "a", Desc: "add " + strings.ToLower(kind.RelationName)},
		{Key: "e", Desc: "edit"},
		{Key: "d", Desc: "delete " + kind.Lower()},
		{Key: "r", Desc: "reload"},
		{Key: "esc", Desc: "back"},
	}
}

// busyText is shown in the status bar while an action runs.
func (m DetailModel) busyText() string {
	switch {
	case m.confirm != nil:
		return ""
	case m.running:
		return "Working..."
	}
	return ""
}

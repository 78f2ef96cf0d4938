package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/brokeneck/brokeneck/cli/internal/logging"
	"github.com/brokeneck/brokeneck/cli/internal/session"
	"github.com/brokeneck/brokeneck/cli/internal/ui/components"
)

// --- Tab Constants ---

const (
	tabUsers = iota
	tabGroups
	tabCount
)

// --- App Model ---

// App is the root TUI model: a tab per kind, each with a list, and at most
// one open detail view.
type App struct {
	ctx     context.Context
	session *session.Session
	bridge  *Bridge
	log     logrus.FieldLogger

	tab    int
	lists  [tabCount]ListModel
	detail *DetailModel
	notice string

	width  int
	height int
	vim    bool
}

// NewApp creates the root model. ctx bounds every backend call the TUI makes
// and should be cancelled once the program exits.
func NewApp(ctx context.Context, s *session.Session, vim bool) App {
	log := s.Log
	if log == nil {
		log = logging.Discard()
	}
	return App{
		ctx:     ctx,
		session: s,
		bridge:  NewBridge(ctx),
		log:     log,
		tab:     tabUsers,
		lists: [tabCount]ListModel{
			NewListModel(ctx, s.Users, vim),
			NewListModel(ctx, s.Groups, vim),
		},
		vim: vim,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.bridge.Listen(), a.lists[tabUsers].Init(), a.lists[tabGroups].Init())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for i := range a.lists {
			a.lists[i].width = msg.Width
		}
		if a.detail != nil {
			a.detail.width = msg.Width
		}
		return a, nil

	case confirmRequestMsg:
		if a.detail == nil {
			msg.reply <- false
			return a, a.bridge.Listen()
		}
		d, _ := a.detail.Update(msg)
		a.detail = &d
		return a, a.bridge.Listen()

	case navigateBackMsg:
		if a.detail != nil {
			kind := a.detail.ctrl.Kind()
			a.log.WithFields(logrus.Fields{"kind": kind.Lower(), "id": a.detail.ctrl.ID()}).Debug("closing deleted entity")
			a.notice = fmt.Sprintf("%s %s deleted", kind.Name, a.detail.ctrl.ID())
			a.detail = nil
		}
		var reload tea.Cmd
		a.lists[a.tab], reload = a.lists[a.tab].Reload()
		return a, tea.Batch(a.bridge.Listen(), reload)

	case listLoadedMsg:
		for i := range a.lists {
			a.lists[i], _ = a.lists[i].Update(msg)
		}
		return a, nil

	case openDetailMsg:
		ctrl := a.session.Controller(msg.binding, msg.id, a.bridge.Gate(), a.bridge.Navigator())
		d := NewDetailModel(a.ctx, ctrl, msg.binding.Backend, a.vim)
		d.width = a.width
		a.detail = &d
		a.notice = ""
		a.log.WithFields(logrus.Fields{"kind": msg.binding.Kind.Lower(), "id": msg.id}).Debug("opening detail")
		return a, d.Init()

	case detailLoadedMsg, actionDoneMsg, candidatesLoadedMsg:
		if a.detail == nil {
			return a, nil
		}
		d, cmd := a.detail.Update(msg)
		a.detail = &d
		return a, cmd

	case tea.KeyMsg:
		return a.handleKeys(msg)
	}
	return a, nil
}

func (a App) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isKey(msg, "ctrl+c") {
		return a, tea.Quit
	}

	if a.detail != nil {
		if isBack(msg) && a.detail.CanClose() {
			a.detail = nil
			var reload tea.Cmd
			a.lists[a.tab], reload = a.lists[a.tab].Reload()
			return a, reload
		}
		if isKey(msg, "q") && a.detail.CanClose() {
			return a, tea.Quit
		}
		d, cmd := a.detail.Update(msg)
		a.detail = &d
		return a, cmd
	}

	list := a.lists[a.tab]
	if !list.Searching() {
		a.notice = ""
		if isQuit(msg) {
			return a, tea.Quit
		}
		if idx, ok := tabIndexForKey(msg.String()); ok {
			a.tab = idx
			return a, nil
		}
		if isKey(msg, "left", "right", "tab", "shift+tab") {
			a.tab = (a.tab + 1) % tabCount
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.lists[a.tab], cmd = list.Update(msg)
	return a, cmd
}

func (a App) View() string {
	header := centerBlockUniform(RenderBanner(), a.width) + "\n" + centerBlockUniform(a.renderTabs(), a.width)

	var content string
	var hints []components.KeyHint
	busy := ""
	if a.detail != nil {
		content = a.detail.View()
		hints = a.detail.hints()
		busy = a.detail.busyText()
	} else {
		content = a.lists[a.tab].View()
		hints = a.lists[a.tab].hints()
	}
	content = centerBlockUniform(content, a.width)

	feedback := ""
	if a.notice != "" {
		feedback = "\n\n" + centerBlockUniform(SuccessStyle.Render(a.notice), a.width)
	}
	bar := components.StatusBar(hints, busy, a.width)
	return fmt.Sprintf("%s\n\n%s%s\n\n%s", header, content, feedback, bar)
}

func (a App) renderTabs() string {
	names := []string{"Users", "Groups"}
	segments := make([]string, 0, len(names))
	for i, name := range names {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == a.tab {
			segments = append(segments, TabActiveStyle.Render(label))
		} else {
			segments = append(segments, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

// centerBlockUniform shifts every line by the same amount so the widest line
// is centered and the block keeps its left edge.
func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	widest := 0
	for _, line := range lines {
		widest = max(widest, lipgloss.Width(line))
	}
	if widest == 0 || widest >= width {
		return s
	}
	prefix := strings.Repeat(" ", (width-widest)/2)
	if prefix == "" {
		return s
	}
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

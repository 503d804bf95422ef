// Package tui is the interactive terminal client: a form to add projects
// and a list to browse and delete them.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sumire/projectmanager/internal/client"
)

type focusArea int

const (
	focusForm focusArea = iota
	focusList
)

type fetchedMsg struct{ result client.FetchResult }

type createdMsg struct{ err error }

type deletedMsg struct{ err error }

// Model is the bubbletea model for the project screen. All API calls run in
// commands; their results are applied to the client state in Update.
type Model struct {
	session *client.Session
	state   client.State
	input   textinput.Model
	focus   focusArea
	cursor  int
	busy    bool
	styles  Styles
	keys    keyMap
}

// New creates the project screen model.
func New(session *client.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter project name"
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	return Model{
		session: session,
		input:   ti,
		focus:   focusForm,
		styles:  DefaultStyles(),
		keys:    defaultKeyMap(),
	}
}

// State returns the current client state.
func (m Model) State() client.State {
	return m.state
}

// Init fetches the list and count on start.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetch())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(10, min(60, msg.Width-8))
		return m, nil

	case fetchedMsg:
		m.busy = false
		m.state.ApplyFetch(msg.result)
		m.clampCursor()
		return m, nil

	case createdMsg:
		m.busy = false
		if m.state.ApplyCreate(msg.err) {
			m.input.SetValue("")
			return m, m.fetch()
		}
		return m, nil

	case deletedMsg:
		m.busy = false
		if m.state.ApplyDelete(msg.err) {
			return m, m.fetch()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Focus) {
			return m.toggleFocus()
		}
		if m.focus == focusForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		name := m.input.Value()
		// An empty form is not submitted.
		if name == "" {
			return m, nil
		}
		m.state.NewProjectName = name
		m.state.Error = ""
		m.busy = true
		return m, m.create(name)

	case key.Matches(msg, m.keys.FormRefresh):
		return m.refresh()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state.NewProjectName = m.input.Value()
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Projects)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Delete):
		if len(m.state.Projects) == 0 {
			return m, nil
		}
		m.state.Error = ""
		m.busy = true
		return m, m.remove(m.state.Projects[m.cursor].ID)

	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()
	}
	return m, nil
}

func (m Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == focusForm {
		m.focus = focusList
		m.input.Blur()
		return m, nil
	}
	m.focus = focusForm
	return m, m.input.Focus()
}

func (m Model) refresh() (tea.Model, tea.Cmd) {
	m.state.Error = ""
	m.busy = true
	return m, m.fetch()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Projects) {
		m.cursor = len(m.state.Projects) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) fetch() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return fetchedMsg{result: session.Fetch(context.Background())}
	}
}

func (m Model) create(name string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return createdMsg{err: session.Create(context.Background(), name)}
	}
}

func (m Model) remove(id int64) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return deletedMsg{err: session.Delete(context.Background(), id)}
	}
}

// View renders the screen.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Project Manager"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Count.Render(fmt.Sprintf("Total Projects: %d", m.state.ProjectCount)))
	if m.busy {
		sb.WriteString("  …")
	}
	sb.WriteString("\n")

	if m.state.Error != "" {
		sb.WriteString(m.styles.Error.Render(m.state.Error))
		sb.WriteString("\n")
	}

	form := m.styles.FormBlur
	if m.focus == focusForm {
		form = m.styles.Form
	}
	sb.WriteString(form.Render(m.input.View() + "  [enter] Add Project"))
	sb.WriteString("\n")

	if len(m.state.Projects) == 0 {
		sb.WriteString(m.styles.Empty.Render("No projects"))
		sb.WriteString("\n")
	}
	for i, p := range m.state.Projects {
		if m.focus == focusList && i == m.cursor {
			sb.WriteString(m.styles.Selected.Render("> " + p.Name))
		} else {
			sb.WriteString(m.styles.Item.Render(p.Name))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Help.Render(m.helpLine()))
	return sb.String()
}

func (m Model) helpLine() string {
	bindings := []key.Binding{m.keys.Submit, m.keys.Focus}
	if m.focus == focusList {
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Delete, m.keys.Refresh, m.keys.Focus, m.keys.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

package tui

import (
	"context"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sumire/projectmanager/internal/client"
	"github.com/sumire/projectmanager/internal/handler"
	"github.com/sumire/projectmanager/internal/repository"
	"github.com/sumire/projectmanager/internal/service"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	svc := service.NewProjectService(repository.NewMemoryProjectRepository(), zap.NewNop())
	require.NoError(t, svc.Seed(context.Background(), []string{"Project A", "Project B", "Project C"}))

	srv := httptest.NewServer(handler.NewRouter(handler.RouterConfig{Projects: svc}))
	c := client.New(srv.URL)
	t.Cleanup(func() {
		c.CloseIdleConnections()
		srv.Close()
	})

	m := New(client.NewSession(c, zap.NewNop()))
	return drain(t, m, m.fetch())
}

// drain runs cmd and feeds API results back into the model until no more
// API work is pending. Other commands (cursor blink) are dropped.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		switch msg.(type) {
		case fetchedMsg, createdMsg, deletedMsg:
		default:
			return m
		}
		next, c := m.Update(msg)
		m = next.(Model)
		cmd = c
	}
	return m
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(m Model, s string) Model {
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_InitialFetch(t *testing.T) {
	m := newTestModel(t)

	assert.Len(t, m.State().Projects, 3)
	assert.Equal(t, 3, m.State().ProjectCount)

	view := m.View()
	assert.Contains(t, view, "Project Manager")
	assert.Contains(t, view, "Total Projects: 3")
	assert.Contains(t, view, "Project A")
	assert.Contains(t, view, "Project C")
}

func TestModel_AddProject(t *testing.T) {
	m := newTestModel(t)

	m = typeText(m, "Alpha")
	assert.Equal(t, "Alpha", m.State().NewProjectName)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = drain(t, m, cmd)

	assert.Equal(t, 4, m.State().ProjectCount)
	assert.Empty(t, m.State().NewProjectName)
	assert.Empty(t, m.input.Value())
	assert.Empty(t, m.State().Error)
	assert.Contains(t, m.View(), "Alpha")
}

func TestModel_AddProjectShowsServiceMessage(t *testing.T) {
	m := newTestModel(t)

	m = typeText(m, "ab")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	assert.Equal(t, "Project name must be at least 3 characters", m.State().Error)
	assert.Equal(t, "ab", m.input.Value())
	assert.Contains(t, m.View(), "Project name must be at least 3 characters")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = typeText(m, "project a")
	m, cmd = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	assert.Equal(t, "Project name already exists", m.State().Error)
	assert.Equal(t, 3, m.State().ProjectCount)
}

func TestModel_EmptySubmitIgnored(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.State().Error)
	assert.Equal(t, 3, m.State().ProjectCount)
}

func TestModel_DeleteSelected(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusList, m.focus)

	m, _ = press(m, keyRune('j'))
	assert.Equal(t, 1, m.cursor)
	assert.Contains(t, m.View(), "> Project B")

	m, cmd := press(m, keyRune('d'))
	require.NotNil(t, cmd)
	m = drain(t, m, cmd)

	require.Len(t, m.State().Projects, 2)
	assert.Equal(t, "Project A", m.State().Projects[0].Name)
	assert.Equal(t, "Project C", m.State().Projects[1].Name)
	assert.Equal(t, 2, m.State().ProjectCount)
}

func TestModel_CursorClampedAfterDeletingLast(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	for range 5 {
		m, _ = press(m, keyRune('j'))
	}
	assert.Equal(t, 2, m.cursor)

	m, cmd := press(m, keyRune('d'))
	m = drain(t, m, cmd)

	assert.Len(t, m.State().Projects, 2)
	assert.Equal(t, 1, m.cursor)
}

func TestModel_DeleteOnEmptyListIsNoop(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})

	for range 3 {
		var cmd tea.Cmd
		m, cmd = press(m, keyRune('d'))
		m = drain(t, m, cmd)
	}
	require.Empty(t, m.State().Projects)
	assert.Contains(t, m.View(), "No projects")

	_, cmd := press(m, keyRune('d'))
	assert.Nil(t, cmd)
}

func TestModel_RefreshClearsError(t *testing.T) {
	m := newTestModel(t)

	m = typeText(m, "ab")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)
	require.NotEmpty(t, m.State().Error)

	m, cmd = press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	assert.Empty(t, m.State().Error)
	m = drain(t, m, cmd)
	assert.Equal(t, 3, m.State().ProjectCount)
}

func TestModel_LetterKeysTypeInForm(t *testing.T) {
	m := newTestModel(t)

	m = typeText(m, "rdq")
	assert.Equal(t, "rdq", m.input.Value())
	assert.Len(t, m.State().Projects, 3)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	_, cmd = press(m, keyRune('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_FetchFailureKeepsState(t *testing.T) {
	m := newTestModel(t)

	m.session = client.NewSession(client.New("http://127.0.0.1:1"), zap.NewNop())
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m = drain(t, m, cmd)

	assert.Equal(t, client.MsgFetchFailed, m.State().Error)
	assert.Len(t, m.State().Projects, 3)
	assert.Equal(t, 3, m.State().ProjectCount)
}

package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m askModel, msg tea.Msg) (askModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(askModel)
	require.True(t, ok)
	return am, cmd
}

func TestAskModelSubmit(t *testing.T) {
	m := newAskModel("Who is your target audience?")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("beginner")})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.done)
	assert.False(t, m.aborted)
	assert.Equal(t, "beginner", m.answer)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), "beginner")
}

func TestAskModelAbort(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := newAskModel("topic?")
		m, cmd := update(t, m, tea.KeyMsg{Type: key})

		assert.True(t, m.aborted)
		assert.Empty(t, m.answer)
		require.NotNil(t, cmd)
	}
}

func TestAskModelView(t *testing.T) {
	view := newAskModel("What topic?").View()
	assert.Contains(t, view, "What topic?")
	assert.Contains(t, view, "esc to cancel")
}

func TestSay(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)

	p.Say("\n=== Create Your Comprehensive Guide ===\n")
	p.Say("Please enter 'beginner', 'intermediate', or 'advanced'")
	p.Say("Creating a guide on Go for beginner audience...")

	s := out.String()
	assert.Contains(t, s, "Create Your Comprehensive Guide")
	assert.Contains(t, s, "Please enter")
	assert.Contains(t, s, "Creating a guide on Go")
}

package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kxue43/nodestarter/i18n"
	"github.com/kxue43/nodestarter/prompt"
)

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	down      = tea.KeyMsg{Type: tea.KeyDown}
	up        = tea.KeyMsg{Type: tea.KeyUp}
	esc       = tea.KeyMsg{Type: tea.KeyEsc}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
)

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m model, msgs ...tea.Msg) (model, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd

	for _, msg := range msgs {
		var next tea.Model

		next, cmd = m.Update(msg)

		var ok bool

		m, ok = next.(model)
		require.True(t, ok)
	}

	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}

	_, ok := cmd().(tea.QuitMsg)

	return ok
}

func constant(s string) func(prompt.Answers) string {
	return func(prompt.Answers) string { return s }
}

func TestInputAcceptsDefault(t *testing.T) {
	m := newModel(i18n.English(), []prompt.Question{
		{Key: "name", Kind: prompt.Input, Message: constant("Project name"), Default: constant("demo")},
	})

	m, cmd := send(t, m, enter)

	assert.True(t, m.done)
	assert.True(t, isQuit(cmd))
	assert.Equal(t, "demo", m.answers.String("name"))
}

func TestInputEditsDefault(t *testing.T) {
	m := newModel(i18n.English(), []prompt.Question{
		{Key: "name", Kind: prompt.Input, Default: constant("dem")},
	})

	m, _ = send(t, m, typed("o-app"), enter)

	assert.Equal(t, "demo-app", m.answers.String("name"))
}

func TestSelectMovesCursor(t *testing.T) {
	m := newModel(i18n.English(), []prompt.Question{
		{Key: "linter", Kind: prompt.Select, Choices: []string{"eslint", "standard", "none"}, Default: constant("standard")},
		{Key: "fresh", Kind: prompt.Confirm, Default: constant(prompt.No)},
	})

	assert.Equal(t, 1, m.cursor)

	m, _ = send(t, m, down, enter)
	assert.Equal(t, "none", m.answers.String("linter"))
	assert.Equal(t, 1, m.cursor)

	m, cmd := send(t, m, up, enter)
	assert.Equal(t, prompt.Yes, m.answers.String("fresh"))
	assert.True(t, isQuit(cmd))
}

func TestSelectWrapsAround(t *testing.T) {
	m := newModel(i18n.English(), []prompt.Question{
		{Key: "framework", Kind: prompt.Select, Choices: []string{"mocha", "jest"}},
	})

	m, _ = send(t, m, up, enter)

	assert.Equal(t, "jest", m.answers.String("framework"))
}

func TestInvalidAnswerIsAskedAgain(t *testing.T) {
	m := newModel(i18n.English(), []prompt.Question{
		{
			Key:     "owner",
			Kind:    prompt.Input,
			Message: constant("License owner"),
			Validate: func(v string) error {
				if v != "ok" {
					return errors.New("say ok")
				}

				return nil
			},
		},
	})

	m, cmd := send(t, m, typed("x"), enter)

	assert.False(t, m.done)
	assert.False(t, isQuit(cmd))
	assert.ErrorIs(t, m.err, prompt.ErrInvalid)
	assert.Contains(t, m.View(), "say ok")
	assert.Contains(t, m.View(), "License owner")

	m, cmd = send(t, m, backspace, typed("ok"), enter)

	assert.True(t, m.done)
	assert.True(t, isQuit(cmd))
	assert.Nil(t, m.err)
	assert.Equal(t, "ok", m.answers.String("owner"))
	assert.NotContains(t, m.View(), "say ok")
}

func TestHiddenQuestionsAreSkipped(t *testing.T) {
	m := newModel(i18n.English(), []prompt.Question{
		{Key: "fresh", Kind: prompt.Confirm, Default: constant(prompt.No)},
		{Key: "email", Kind: prompt.Input, When: func(a prompt.Answers) bool { return a.Bool("fresh") }},
		{Key: "dir", Kind: prompt.Input, Default: constant("test")},
	})

	m, _ = send(t, m, enter)
	assert.Equal(t, "dir", m.current().Key)

	m, _ = send(t, m, enter)

	assert.True(t, m.done)
	assert.False(t, m.answers.Has("email"))
	assert.Equal(t, []string{"dir", "fresh"}, m.answers.Keys())
}

func TestEscAborts(t *testing.T) {
	m := newModel(i18n.English(), []prompt.Question{{Key: "name", Kind: prompt.Input}})

	m, cmd := send(t, m, esc)

	assert.True(t, m.aborted)
	assert.True(t, isQuit(cmd))
}

func TestViewShowsHistoryAndHelp(t *testing.T) {
	m := newModel(i18n.For("fr"), []prompt.Question{
		{Key: "name", Kind: prompt.Input, Message: constant("Nom"), Default: constant("demo")},
		{Key: "linter", Kind: prompt.Select, Message: constant("Linter"), Choices: []string{"eslint", "standard"}},
	})

	m, _ = send(t, m, enter)

	view := m.View()

	assert.Contains(t, view, "Nom")
	assert.Contains(t, view, "demo")
	assert.Contains(t, view, "> eslint")
	assert.Contains(t, view, "valider")
}

func TestAskWithNothingVisible(t *testing.T) {
	var out bytes.Buffer

	c := NewCollector(i18n.English(), tea.WithInput(&bytes.Buffer{}), tea.WithOutput(&out), tea.WithoutSignalHandler())

	answers, err := c.Ask(context.Background(), []prompt.Question{
		{Key: "hidden", Kind: prompt.Input, When: func(prompt.Answers) bool { return false }},
	})
	require.NoError(t, err)

	assert.Empty(t, answers.Keys())
}

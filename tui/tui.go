// Package tui asks prompt questions in the terminal with bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kxue43/nodestarter/i18n"
	"github.com/kxue43/nodestarter/prompt"
)

type (
	// Collector is the interactive [prompt.Collector].
	Collector struct {
		messages i18n.Messages
		options  []tea.ProgramOption
	}

	keyMap struct {
		up     key.Binding
		down   key.Binding
		submit key.Binding
		help   key.Binding
		quit   key.Binding
	}

	inputKeyMap struct {
		keys *keyMap
	}

	choiceKeyMap struct {
		keys *keyMap
	}

	answered struct {
		message string
		value   string
	}

	model struct {
		keys      keyMap
		help      help.Model
		questions []prompt.Question
		answers   prompt.Answers
		history   []answered
		index     int
		ti        textinput.Model
		choices   []string
		cursor    int
		err       error
		aborted   bool
		done      bool
	}
)

var (
	palette = struct {
		magenta lipgloss.Color
		green   lipgloss.Color
		grey    lipgloss.Color
		red     lipgloss.Color
	}{
		magenta: lipgloss.Color("212"),
		green:   lipgloss.Color("42"),
		grey:    lipgloss.Color("245"),
		red:     lipgloss.Color("196"),
	}

	highlightedStyle = lipgloss.NewStyle().Foreground(palette.magenta)
	answeredStyle    = lipgloss.NewStyle().Foreground(palette.green)
	mutedStyle       = lipgloss.NewStyle().Foreground(palette.grey)
	errorStyle       = lipgloss.NewStyle().Foreground(palette.red)
)

// NewCollector returns a collector whose key help is in the language of messages. Options are passed
// to every bubbletea program it starts.
func NewCollector(messages i18n.Messages, options ...tea.ProgramOption) *Collector {
	return &Collector{messages: messages, options: options}
}

func newKeyMap(messages i18n.Messages) keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", messages.Get(i18n.HelpNavigate)),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", messages.Get(i18n.HelpNavigate)),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", messages.Get(i18n.HelpSubmit)),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", messages.Get(i18n.HelpToggle)),
		),
		quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", messages.Get(i18n.HelpAbort)),
		),
	}
}

func (km inputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.keys.submit, km.keys.quit}
}

func (km inputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{km.ShortHelp()}
}

func (km choiceKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.keys.submit, km.keys.help, km.keys.quit}
}

func (km choiceKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.keys.up, km.keys.down, km.keys.submit},
		{km.keys.help, km.keys.quit},
	}
}

func newModel(messages i18n.Messages, questions []prompt.Question) model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 48
	ti.Prompt = "> "

	m := model{
		keys:      newKeyMap(messages),
		help:      help.New(),
		questions: questions,
		answers:   prompt.NewAnswers(nil),
		ti:        ti,
	}

	m.prepare()

	return m
}

func (m *model) current() prompt.Question {
	return m.questions[m.index]
}

// prepare moves to the next visible question and loads its default.
func (m *model) prepare() {
	for m.index < len(m.questions) && !m.current().Visible(m.answers) {
		m.index++
	}

	if m.index == len(m.questions) {
		m.done = true

		return
	}

	q := m.current()
	def := q.DefaultValue(m.answers)

	m.choices = nil
	m.cursor = 0

	switch q.Kind {
	case prompt.Select:
		m.choices = q.Choices
	case prompt.Confirm:
		m.choices = []string{prompt.Yes, prompt.No}
	}

	if m.choices != nil {
		m.cursor = max(slices.Index(m.choices, def), 0)
		m.ti.Blur()

		return
	}

	m.ti.SetValue(def)
	m.ti.CursorEnd()
	m.ti.Focus()
}

func (m model) value() string {
	if m.choices != nil {
		return m.choices[m.cursor]
	}

	return strings.TrimSpace(m.ti.Value())
}

func (m model) Init() tea.Cmd {
	if m.done {
		return tea.Quit
	}

	return textinput.Blink
}

func (m model) submit() (tea.Model, tea.Cmd) {
	q := m.current()
	v := m.value()

	if err := q.Check(v); err != nil {
		m.err = err

		return m, nil
	}

	m.err = nil
	m.history = append(m.history, answered{message: q.Prompt(m.answers), value: v})
	m.answers = m.answers.With(q.Key, v)
	m.index++

	m.prepare()

	if m.done {
		return m, tea.Quit
	}

	return m, textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			m.aborted = true

			return m, tea.Quit
		case key.Matches(msg, m.keys.submit):
			return m.submit()
		case m.choices != nil && key.Matches(msg, m.keys.up):
			m.cursor = (m.cursor + len(m.choices) - 1) % len(m.choices)

			return m, nil
		case m.choices != nil && key.Matches(msg, m.keys.down):
			m.cursor = (m.cursor + 1) % len(m.choices)

			return m, nil
		case m.choices != nil && key.Matches(msg, m.keys.help):
			m.help.ShowAll = !m.help.ShowAll

			return m, nil
		case m.choices != nil:
			return m, nil
		}
	}

	if m.choices == nil {
		m.ti, cmd = m.ti.Update(msg)
	}

	return m, cmd
}

func (m model) View() string {
	var b strings.Builder

	for _, a := range m.history {
		b.WriteString(answeredStyle.Render("✔ "))
		b.WriteString(a.message)
		b.WriteString(" ")
		b.WriteString(mutedStyle.Render(a.value))
		b.WriteRune('\n')
	}

	if m.done || m.aborted {
		return b.String()
	}

	b.WriteString(highlightedStyle.Render("? "))
	b.WriteString(m.current().Prompt(m.answers))
	b.WriteRune('\n')

	if m.choices == nil {
		b.WriteString(m.ti.View())
		b.WriteRune('\n')
	} else {
		for i, c := range m.choices {
			if i == m.cursor {
				b.WriteString(highlightedStyle.Render("> " + c))
			} else {
				b.WriteString("  " + c)
			}

			b.WriteRune('\n')
		}
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(strings.TrimPrefix(m.err.Error(), prompt.ErrInvalid.Error()+": ")))
		b.WriteRune('\n')
	}

	b.WriteRune('\n')

	if m.choices == nil {
		b.WriteString(m.help.View(inputKeyMap{keys: &m.keys}))
	} else {
		b.WriteString(m.help.View(choiceKeyMap{keys: &m.keys}))
	}

	b.WriteRune('\n')

	return b.String()
}

// Ask implements [prompt.Collector]. Invalid answers are reported under the question and asked again;
// esc or ctrl+c ends the session.
// Non-nil returned error wraps [prompt.ErrAborted] when the user quits.
func (c *Collector) Ask(ctx context.Context, questions []prompt.Question) (prompt.Answers, error) {
	options := append([]tea.ProgramOption{tea.WithContext(ctx)}, c.options...)

	final, err := tea.NewProgram(newModel(c.messages, questions), options...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return prompt.NewAnswers(nil), fmt.Errorf("%w: %w", prompt.ErrAborted, err)
		}

		return prompt.NewAnswers(nil), fmt.Errorf("failed to run prompts: %w", err)
	}

	m, ok := final.(model)
	if !ok {
		return prompt.NewAnswers(nil), fmt.Errorf("unexpected final model %T", final)
	}

	if m.aborted || !m.done {
		return m.answers, prompt.ErrAborted
	}

	return m.answers, nil
}

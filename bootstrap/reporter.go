package bootstrap

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/kxue43/nodestarter/i18n"
)

type (
	// Reporter receives per-step progress. Calls arrive in step order from a single goroutine.
	Reporter interface {
		StepStarted(name, title string)
		StepSkipped(name, title, reason string)
		StepDone(name, title string)
		StepFailed(name, title string, err error)
		Progress(name, message string)
	}

	NopReporter struct{}

	// TerminalReporter prints one styled line per step event.
	TerminalReporter struct {
		out      io.Writer
		messages i18n.Messages
		styles   reporterStyles
	}

	reporterStyles struct {
		running lipgloss.Style
		done    lipgloss.Style
		skipped lipgloss.Style
		failed  lipgloss.Style
		detail  lipgloss.Style
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
)

func (NopReporter) StepStarted(string, string) {}
func (NopReporter) StepSkipped(string, string, string) {}
func (NopReporter) StepDone(string, string) {}
func (NopReporter) StepFailed(string, string, error) {}
func (NopReporter) Progress(string, string) {}

func NewTerminalReporter(out io.Writer, messages i18n.Messages) *TerminalReporter {
	return &TerminalReporter{
		out:      out,
		messages: messages,
		styles: reporterStyles{
			running: lipgloss.NewStyle().Foreground(palette.magenta),
			done:    lipgloss.NewStyle().Foreground(palette.green),
			skipped: lipgloss.NewStyle().Foreground(palette.grey),
			failed:  lipgloss.NewStyle().Foreground(palette.red).Bold(true),
			detail:  lipgloss.NewStyle().Foreground(palette.grey).Italic(true),
		},
	}
}

func (t *TerminalReporter) line(style lipgloss.Style, status, title, detail string) {
	text := style.Render(fmt.Sprintf("%-8s", status)) + " " + title

	if detail != "" {
		text += " " + t.styles.detail.Render("("+detail+")")
	}

	_, _ = fmt.Fprintln(t.out, text)
}

func (t *TerminalReporter) StepStarted(_, title string) {
	t.line(t.styles.running, t.messages.Get(i18n.StatusRunning), title, "")
}

func (t *TerminalReporter) StepSkipped(_, title, reason string) {
	t.line(t.styles.skipped, t.messages.Get(i18n.StatusSkipped), title, reason)
}

func (t *TerminalReporter) StepDone(_, title string) {
	t.line(t.styles.done, t.messages.Get(i18n.StatusDone), title, "")
}

func (t *TerminalReporter) StepFailed(_, title string, err error) {
	t.line(t.styles.failed, t.messages.Get(i18n.StatusFailed), title, err.Error())
}

func (t *TerminalReporter) Progress(_, message string) {
	_, _ = fmt.Fprintln(t.out, "         "+t.styles.detail.Render(message))
}

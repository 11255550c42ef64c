package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"guide_creator/generator"
)

// Prompter asks each question with a bubbletea text input.
// It implements generator.Prompter.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

func (p *Prompter) Ask(ctx context.Context, question string) (string, error) {
	m := newAskModel(strings.TrimSpace(question))
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := prog.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("running prompt: %w", err)
	}
	res, ok := final.(askModel)
	if !ok {
		return "", errors.New("unexpected prompt model")
	}
	if res.aborted {
		return "", generator.ErrInputAborted
	}
	return res.answer, nil
}

func (p *Prompter) Say(message string) {
	trimmed := strings.TrimSpace(message)
	switch {
	case strings.HasPrefix(trimmed, "==="):
		fmt.Fprintln(p.out, Banner(trimmed))
	case strings.HasPrefix(trimmed, "Please enter"):
		fmt.Fprintln(p.out, Warn(trimmed))
	default:
		fmt.Fprintln(p.out, Notice(trimmed))
	}
}

type askModel struct {
	question string
	input    textinput.Model
	answer   string
	aborted  bool
	done     bool
}

func newAskModel(question string) askModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()
	return askModel{question: question, input: ti}
}

func (m askModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m askModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.answer = m.input.Value()
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m askModel) View() string {
	if m.done {
		return questionStyle.Render(m.question) + " " + m.answer + "\n"
	}
	return questionStyle.Render(m.question) + "\n" +
		m.input.View() + "\n" +
		hintStyle.Render("enter to submit, esc to cancel") + "\n"
}

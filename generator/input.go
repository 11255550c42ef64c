package generator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	banner           = "=== Create Your Comprehensive Guide ==="
	topicQuestion    = "What topic would you like to create a guide for? "
	audienceQuestion = "Who is your target audience? (beginner/intermediate/advanced) "
	audienceHint     = "Please enter 'beginner', 'intermediate', or 'advanced'"
)

// Prompter asks the user questions. Ask must return promptly once ctx is done.
type Prompter interface {
	Ask(ctx context.Context, question string) (string, error)
	Say(message string)
}

// CollectOptions tunes CollectInput. A non-empty Topic is used as given
// and the topic question is skipped. MaxAttempts <= 0 means unbounded.
type CollectOptions struct {
	Topic       string
	MaxAttempts int
}

// CollectInput asks for a topic and an audience level and returns the
// initial pipeline state. The audience question repeats until a valid
// level is given, the attempt budget runs out, or ctx is cancelled.
func CollectInput(ctx context.Context, p Prompter, opts CollectOptions) (State, error) {
	p.Say("\n" + banner + "\n")

	topic := opts.Topic
	if topic == "" {
		var err error
		if topic, err = p.Ask(ctx, topicQuestion); err != nil {
			return State{}, fmt.Errorf("reading topic: %w", err)
		}
	}

	var (
		level    AudienceLevel
		attempts int
		last     string
	)
	for {
		attempts++
		answer, err := p.Ask(ctx, audienceQuestion)
		if err != nil {
			return State{}, fmt.Errorf("reading audience level: %w", err)
		}
		last = answer
		if level, err = ParseAudienceLevel(answer); err == nil {
			break
		}
		if opts.MaxAttempts > 0 && attempts >= opts.MaxAttempts {
			return State{}, &InputValidationError{Value: last, Attempts: attempts}
		}
		p.Say(audienceHint)
	}

	st := State{Topic: topic, AudienceLevel: level}
	p.Say(fmt.Sprintf("\nCreating a guide on %s for %s audience...\n", st.Topic, st.AudienceLevel))
	return st, nil
}

// PresetInput builds the initial state from values given up front.
func PresetInput(topic, audience string) (State, error) {
	if strings.TrimSpace(topic) == "" {
		return State{}, errors.New("topic is required")
	}
	level, err := ParseAudienceLevel(audience)
	if err != nil {
		return State{}, err
	}
	return State{Topic: topic, AudienceLevel: level}, nil
}

// LinePrompter reads one answer per line from an io.Reader.
type LinePrompter struct {
	out io.Writer

	once  sync.Once
	in    *bufio.Scanner
	lines chan lineResult
}

type lineResult struct {
	text string
	err  error
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{out: out, in: bufio.NewScanner(in)}
}

// start reads lines in the background so Ask can select on ctx. The
// reader goroutine blocks on the next line only after one was consumed.
func (p *LinePrompter) start() {
	p.lines = make(chan lineResult)
	go func() {
		defer close(p.lines)
		for p.in.Scan() {
			p.lines <- lineResult{text: p.in.Text()}
		}
		err := p.in.Err()
		if err == nil {
			err = io.EOF
		}
		p.lines <- lineResult{err: err}
	}()
}

func (p *LinePrompter) Ask(ctx context.Context, question string) (string, error) {
	p.once.Do(p.start)
	fmt.Fprint(p.out, question)
	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case r, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		if r.err != nil {
			return "", r.err
		}
		return strings.TrimRight(r.text, "\r"), nil
	}
}

func (p *LinePrompter) Say(message string) {
	fmt.Fprintln(p.out, message)
}

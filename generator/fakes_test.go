package generator

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// scriptedLLM returns canned responses in order and records prompts.
type scriptedLLM struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	prompts   []Prompt
}

func (s *scriptedLLM) Complete(_ context.Context, p Prompt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := len(s.prompts)
	s.prompts = append(s.prompts, p)
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i >= len(s.responses) {
		return "", errors.New("scriptedLLM: no more responses")
	}
	return s.responses[i], nil
}

// recordingAuthor returns "## <title>\n\nbody of <title>" and records requests.
type recordingAuthor struct {
	requests []AuthorRequest
	failOn   int // 1-indexed call that fails; 0 never fails
}

func (a *recordingAuthor) Write(_ context.Context, req AuthorRequest) (string, error) {
	a.requests = append(a.requests, req)
	if a.failOn > 0 && len(a.requests) == a.failOn {
		return "", errors.New("provider unavailable")
	}
	return "## " + req.SectionTitle + "\n\nbody of " + req.SectionTitle, nil
}

// memSink keeps artifacts in memory.
type memSink struct {
	outline    json.RawMessage
	guide      string
	guideTitle string
	outlineN   int
	guideN     int
	err        error
}

func (m *memSink) SaveOutline(raw json.RawMessage) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.outlineN++
	m.outline = append(json.RawMessage(nil), raw...)
	return "mem/guide_outline.json", nil
}

func (m *memSink) SaveGuide(title, doc string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.guideN++
	m.guideTitle = title
	m.guide = doc
	return "mem/complete_guide.md", nil
}

// scriptedPrompter answers questions from a fixed list.
type scriptedPrompter struct {
	answers []string
	asked   []string
	said    []string
}

func (p *scriptedPrompter) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.asked = append(p.asked, question)
	if len(p.answers) == 0 {
		return "", errors.New("scriptedPrompter: out of answers")
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *scriptedPrompter) Say(message string) {
	p.said = append(p.said, message)
}

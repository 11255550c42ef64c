package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// OutlineSink persists the raw outline JSON and returns where it went.
type OutlineSink interface {
	SaveOutline(raw json.RawMessage) (string, error)
}

// OutlineGenerator turns topic and audience into a validated GuideOutline.
type OutlineGenerator struct {
	llm    LLMClient
	sink   OutlineSink
	logger *slog.Logger
}

func NewOutlineGenerator(llm LLMClient, sink OutlineSink, logger *slog.Logger) (*OutlineGenerator, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if sink == nil {
		return nil, errors.New("outline sink is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OutlineGenerator{llm: llm, sink: sink, logger: logger.With("component", "outline")}, nil
}

// Generate calls the model once, validates the result and persists it.
// The returned state carries the outline and its file path.
func (g *OutlineGenerator) Generate(ctx context.Context, st State) (State, error) {
	g.logger.Info("creating guide outline", "topic", st.Topic, "audience", st.AudienceLevel)

	raw, err := g.llm.Complete(ctx, BuildOutlinePrompt(st.Topic, st.AudienceLevel))
	if err != nil {
		return st, asModelError("outline", err)
	}

	outline, doc, err := ParseOutline(raw)
	if err != nil {
		return st, err
	}

	path, err := g.sink.SaveOutline(doc)
	if err != nil {
		return st, err
	}

	next := st.clone()
	next.Outline = &outline
	next.OutlinePath = path
	g.logger.Info("guide outline created", "sections", len(outline.Sections), "path", path)
	return next, nil
}

// ParseOutline validates and decodes outline JSON. It returns
// the outline together with the JSON document it was decoded from.
func ParseOutline(raw string) (GuideOutline, json.RawMessage, error) {
	doc, ok := completionJSON(raw)
	if !ok {
		return GuideOutline{}, nil, &SchemaValidationError{Reason: "response is not valid JSON", Raw: raw}
	}

	validator, err := outlineValidator()
	if err != nil {
		return GuideOutline{}, nil, &SchemaValidationError{Reason: "outline schema unavailable", Raw: raw, Err: err}
	}
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return GuideOutline{}, nil, &SchemaValidationError{Reason: "response is not valid JSON", Raw: raw, Err: err}
	}
	if err := validator.Validate(v); err != nil {
		return GuideOutline{}, nil, &SchemaValidationError{Reason: "response does not match outline shape", Raw: raw, Err: err}
	}

	var outline GuideOutline
	if err := json.Unmarshal(doc, &outline); err != nil {
		return GuideOutline{}, nil, &SchemaValidationError{Reason: "decoding outline", Raw: raw, Err: err}
	}

	seen := make(map[string]int, len(outline.Sections))
	for i, s := range outline.Sections {
		if prev, ok := seen[s.Title]; ok {
			return GuideOutline{}, nil, &SchemaValidationError{
				Reason: fmt.Sprintf("sections %d and %d share the title %q", prev+1, i+1, s.Title),
				Raw:    raw,
				Err:    ErrDuplicateSectionTitle,
			}
		}
		seen[s.Title] = i
	}
	return outline, doc, nil
}

package generator

import (
	"context"
	"errors"
	"log/slog"
)

// Stage names a step of the guide pipeline.
type Stage string

const (
	StageInput   Stage = "input"
	StageOutline Stage = "outline"
	StageCompile Stage = "compile"
	StageDone    Stage = "done"
)

// Sink persists both pipeline artifacts.
type Sink interface {
	OutlineSink
	GuideSink
}

// Flow chains the outline and compile stages over a collected input state.
type Flow struct {
	outline  *OutlineGenerator
	compiler *Compiler
	logger   *slog.Logger

	// OnStage, if set, is called when the flow enters a stage.
	OnStage func(Stage)
}

// NewFlow wires one run's stages. llm serves the outline, author writes sections.
func NewFlow(llm LLMClient, author SectionAuthor, sink Sink, logger *slog.Logger) (*Flow, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if sink == nil {
		return nil, errors.New("sink is required")
	}
	og, err := NewOutlineGenerator(llm, sink, logger)
	if err != nil {
		return nil, err
	}
	comp, err := NewCompiler(author, sink, logger)
	if err != nil {
		return nil, err
	}
	return &Flow{outline: og, compiler: comp, logger: logger.With("component", "flow")}, nil
}

// OnSection forwards compile progress to fn.
func (f *Flow) OnSection(fn func(done, total int, title string)) {
	f.compiler.OnSection = fn
}

// Collect enters the input stage and returns the state built by collect.
func (f *Flow) Collect(ctx context.Context, collect func(context.Context) (State, error)) (State, error) {
	f.enter(StageInput)
	st, err := collect(ctx)
	if err != nil {
		f.logger.Error("input stage failed", "error", err)
		return State{}, err
	}
	return st, nil
}

// Run generates the outline for in and then compiles the guide.
func (f *Flow) Run(ctx context.Context, in State) (State, error) {
	f.enter(StageOutline)
	st, err := f.outline.Generate(ctx, in)
	if err != nil {
		f.logger.Error("outline stage failed", "error", err)
		return in, err
	}

	f.enter(StageCompile)
	st, err = f.compiler.Compile(ctx, st)
	if err != nil {
		f.logger.Error("compile stage failed", "error", err)
		return in, err
	}

	f.enter(StageDone)
	return st, nil
}

func (f *Flow) enter(s Stage) {
	f.logger.Debug("entering stage", "stage", s)
	if f.OnStage != nil {
		f.OnStage(s)
	}
}

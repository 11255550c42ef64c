package generator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// NoPreviousSections is the context given to the first section.
const NoPreviousSections = "No previous sections written yet."

// GuideSink persists the assembled guide and returns its path.
type GuideSink interface {
	SaveGuide(title, doc string) (string, error)
}

// Compiler authors each outline section in order and assembles the guide.
type Compiler struct {
	author SectionAuthor
	sink   GuideSink
	logger *slog.Logger

	// OnSection, if set, is called after each section is stored.
	OnSection func(done, total int, title string)
}

func NewCompiler(author SectionAuthor, sink GuideSink, logger *slog.Logger) (*Compiler, error) {
	if author == nil {
		return nil, errors.New("section author is required")
	}
	if sink == nil {
		return nil, errors.New("guide sink is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{author: author, sink: sink, logger: logger.With("component", "compiler")}, nil
}

// Compile runs the author once per section, strictly in outline order.
// Section i sees the stored text of sections 1..i-1. Nothing is written
// unless every section succeeds.
func (c *Compiler) Compile(ctx context.Context, st State) (State, error) {
	if st.Outline == nil {
		return st, errors.New("compile: state has no outline")
	}
	next := st.clone()
	outline := next.Outline
	contents := next.Sections

	c.logger.Info("writing guide sections", "sections", len(outline.Sections))
	var completed []string
	for i, section := range outline.Sections {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		c.logger.Info("processing section", "index", i+1, "title", section.Title)

		text, err := c.author.Write(ctx, AuthorRequest{
			SectionTitle:       section.Title,
			SectionDescription: section.Description,
			AudienceLevel:      next.AudienceLevel,
			PreviousSections:   RenderContext(completed, contents),
			DraftContent:       "",
		})
		if err != nil {
			return st, asModelError("author section "+section.Title, err)
		}

		contents.Set(section.Title, text)
		completed = append(completed, section.Title)
		c.logger.Info("section completed", "index", i+1, "title", section.Title)
		if c.OnSection != nil {
			c.OnSection(i+1, len(outline.Sections), section.Title)
		}
	}

	doc := AssembleGuide(*outline, contents)
	path, err := c.sink.SaveGuide(outline.Title, doc)
	if err != nil {
		return st, err
	}

	next.Sections = contents
	next.Document = doc
	next.GuidePath = path
	c.logger.Info("complete guide compiled", "path", path)
	return next, nil
}

// RenderContext renders the completed sections, in order, as the
// previous-sections context for the next author call.
func RenderContext(completed []string, contents SectionsContent) string {
	if len(completed) == 0 {
		return NoPreviousSections
	}
	var sb strings.Builder
	sb.WriteString("# Previously Written Sections\n\n")
	for _, title := range completed {
		text, _ := contents.Get(title)
		sb.WriteString("## " + title + "\n\n")
		sb.WriteString(text + "\n\n")
	}
	return sb.String()
}

// AssembleGuide joins title, introduction, section bodies in outline order
// and conclusion into one Markdown document.
func AssembleGuide(outline GuideOutline, contents SectionsContent) string {
	var sb strings.Builder
	sb.WriteString("# " + outline.Title + "\n\n")
	sb.WriteString("## Introduction\n\n" + outline.Introduction + "\n\n")
	for _, section := range outline.Sections {
		text, _ := contents.Get(section.Title)
		sb.WriteString("\n\n" + text + "\n\n")
	}
	sb.WriteString("## Conclusion\n\n" + outline.Conclusion + "\n\n")
	return sb.String()
}

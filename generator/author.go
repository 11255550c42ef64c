package generator

import (
	"context"
	"errors"
	"log/slog"
)

// AuthorRequest carries everything the author capability sees for one section.
type AuthorRequest struct {
	SectionTitle       string        `json:"section_title"`
	SectionDescription string        `json:"section_description"`
	AudienceLevel      AudienceLevel `json:"audience_level"`
	PreviousSections   string        `json:"previous_sections"`
	DraftContent       string        `json:"draft_content"`
}

// SectionAuthor expands one section's metadata plus prior context into prose.
type SectionAuthor interface {
	Write(ctx context.Context, req AuthorRequest) (string, error)
}

// Author writes a section with one LLM call and, when review is on,
// edits the draft with a second call.
type Author struct {
	writer   LLMClient
	reviewer LLMClient
	review   bool
	logger   *slog.Logger
}

// AuthorOption customizes an Author.
type AuthorOption func(*Author)

// WithReview toggles the reviewer pass.
func WithReview(on bool) AuthorOption {
	return func(a *Author) { a.review = on }
}

// WithReviewer uses a different client for the reviewer pass.
func WithReviewer(llm LLMClient) AuthorOption {
	return func(a *Author) {
		if llm != nil {
			a.reviewer = llm
		}
	}
}

// WithAuthorLogger sets the logger.
func WithAuthorLogger(l *slog.Logger) AuthorOption {
	return func(a *Author) {
		if l != nil {
			a.logger = l
		}
	}
}

func NewAuthor(llm LLMClient, opts ...AuthorOption) (*Author, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	a := &Author{writer: llm, reviewer: llm, review: true, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "author")
	return a, nil
}

// Write drafts the section and, if enabled, passes the draft to the reviewer.
func (a *Author) Write(ctx context.Context, req AuthorRequest) (string, error) {
	raw, err := a.writer.Complete(ctx, BuildSectionPrompt(req))
	if err != nil {
		return "", asModelError("write section "+req.SectionTitle, err)
	}
	draft, err := PostProcessSection(raw, req.SectionTitle)
	if err != nil {
		return "", asModelError("write section "+req.SectionTitle, err)
	}
	if !a.review {
		return draft, nil
	}

	a.logger.Debug("reviewing section", "section", req.SectionTitle, "draft_bytes", len(draft))
	reviewReq := req
	reviewReq.DraftContent = draft
	raw, err = a.reviewer.Complete(ctx, BuildReviewPrompt(reviewReq))
	if err != nil {
		return "", asModelError("review section "+req.SectionTitle, err)
	}
	final, err := PostProcessSection(raw, req.SectionTitle)
	if err != nil {
		return "", asModelError("review section "+req.SectionTitle, err)
	}
	return final, nil
}

package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Prompt is the system and user message pair sent to the LLM.
type Prompt struct {
	System string
	User   string
	// Schema requests structured JSON output when set.
	Schema *ResponseSchema
}

// ResponseSchema names a JSON Schema the response must satisfy.
type ResponseSchema struct {
	Name        string
	Description string
	Schema      json.RawMessage
}

const outlineSystemPrompt = "You are a helpful assistant designed to output JSON."

// BuildOutlinePrompt asks for a structured guide outline.
func BuildOutlinePrompt(topic string, level AudienceLevel) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create a detailed outline for a comprehensive guide on \"%s\" for %s level learners.\n\n", topic, level))
	sb.WriteString("The outline should include:\n")
	sb.WriteString("1. A compelling title for the guide\n")
	sb.WriteString("2. An introduction to the topic\n")
	sb.WriteString("3. 4-6 main sections that cover the most important aspects of the topic\n")
	sb.WriteString("4. A conclusion or summary\n\n")
	sb.WriteString("For each section, provide a clear title and a brief description of what it should cover.\n")

	return Prompt{
		System: outlineSystemPrompt,
		User:   sb.String(),
		Schema: &ResponseSchema{
			Name:        outlineSchemaName,
			Description: "Structured outline of a comprehensive guide",
			Schema:      OutlineSchema(),
		},
	}
}

// BuildSectionPrompt asks the writer for one section's prose.
func BuildSectionPrompt(req AuthorRequest) Prompt {
	var sb strings.Builder
	sb.WriteString("You are an educational content writer. Write clear, engaging and accurate guide sections in Markdown.\n")
	sb.WriteString("Rules:\n")
	sb.WriteString(fmt.Sprintf("- Write for a %s audience.\n", req.AudienceLevel))
	sb.WriteString(fmt.Sprintf("- Start with the heading \"## %s\".\n", req.SectionTitle))
	sb.WriteString("- Stay consistent with the previously written sections and do not repeat them.\n")
	sb.WriteString("- Use examples, lists and subheadings (###) where they help.\n")
	sb.WriteString("- Output only the section, without commentary.\n")

	var user strings.Builder
	user.WriteString(fmt.Sprintf("Section title: %s\n", req.SectionTitle))
	user.WriteString(fmt.Sprintf("Section description: %s\n\n", req.SectionDescription))
	user.WriteString("Previously written sections:\n")
	user.WriteString(req.PreviousSections)
	user.WriteString("\n\n")
	if strings.TrimSpace(req.DraftContent) != "" {
		user.WriteString("Existing draft to build on:\n")
		user.WriteString(req.DraftContent)
		user.WriteString("\n\n")
	}
	user.WriteString("Write the complete section now.")

	return Prompt{System: sb.String(), User: user.String()}
}

// BuildReviewPrompt asks the reviewer to edit a drafted section.
func BuildReviewPrompt(req AuthorRequest) Prompt {
	var sb strings.Builder
	sb.WriteString("You are a meticulous editor of educational guides. Improve the draft with the smallest necessary changes and keep its Markdown structure.\n")
	sb.WriteString(fmt.Sprintf("- Check that the level fits a %s audience.\n", req.AudienceLevel))
	sb.WriteString("- Fix factual errors, unclear explanations and inconsistencies with previous sections.\n")
	sb.WriteString(fmt.Sprintf("- Keep the \"## %s\" heading.\n", req.SectionTitle))
	sb.WriteString("- Output the full revised section only.\n")

	var user strings.Builder
	user.WriteString(fmt.Sprintf("Section title: %s\n", req.SectionTitle))
	user.WriteString(fmt.Sprintf("Section description: %s\n\n", req.SectionDescription))
	user.WriteString("Previously written sections:\n")
	user.WriteString(req.PreviousSections)
	user.WriteString("\n\nDraft:\n")
	user.WriteString(req.DraftContent)
	user.WriteString("\n\nReturn the revised section.")

	return Prompt{System: sb.String(), User: user.String()}
}

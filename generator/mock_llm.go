package generator

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
)

// MockLLM is an offline stand-in that never calls a model. Structured
// prompts get a small fixed outline; everything else gets a Markdown section.
type MockLLM struct{}

var mockTopicRe = regexp.MustCompile(`guide on "(.*)" for \w+ level learners`)
var mockTitleRe = regexp.MustCompile(`(?m)^Section title: (.+)$`)

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	if prompt.Schema != nil {
		topic := "the topic"
		if match := mockTopicRe.FindStringSubmatch(prompt.User); len(match) == 2 {
			topic = match[1]
		}
		outline := GuideOutline{
			Title:          "A Practical Guide to " + topic,
			Introduction:   "This guide walks through " + topic + " step by step.",
			TargetAudience: "Readers who want a structured introduction to " + topic,
			Sections: []Section{
				{Title: "Foundations", Description: "Core ideas and vocabulary."},
				{Title: "Getting Hands-On", Description: "A first practical walkthrough."},
				{Title: "Next Steps", Description: "Where to go after the basics."},
			},
			Conclusion: "You now have a working understanding of " + topic + ".",
		}
		b, err := json.Marshal(outline)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	title := "Section"
	if match := mockTitleRe.FindStringSubmatch(prompt.User); len(match) == 2 {
		title = strings.TrimSpace(match[1])
	}
	var sb strings.Builder
	sb.WriteString("## " + title + "\n\n")
	sb.WriteString("This is placeholder content generated without a model.\n\n")
	sb.WriteString("- Key point one\n- Key point two\n")
	return sb.String(), nil
}

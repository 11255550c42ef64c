package generator

import (
	"strings"
)

// AudienceLevel is the coarse readership tag a guide is written for.
type AudienceLevel string

const (
	Beginner     AudienceLevel = "beginner"
	Intermediate AudienceLevel = "intermediate"
	Advanced     AudienceLevel = "advanced"
)

// AudienceLevels lists the accepted levels in prompt order.
var AudienceLevels = []AudienceLevel{Beginner, Intermediate, Advanced}

// ParseAudienceLevel normalizes s and returns the matching level.
func ParseAudienceLevel(s string) (AudienceLevel, error) {
	v := AudienceLevel(strings.ToLower(strings.TrimSpace(s)))
	for _, lvl := range AudienceLevels {
		if v == lvl {
			return lvl, nil
		}
	}
	return "", &InputValidationError{Value: s}
}

// Section is one entry of the outline. It is never changed after parsing.
type Section struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// GuideOutline is the structured plan returned by the outline model.
type GuideOutline struct {
	Title          string    `json:"title" yaml:"title"`
	Introduction   string    `json:"introduction" yaml:"introduction"`
	TargetAudience string    `json:"target_audience" yaml:"target_audience"`
	Sections       []Section `json:"sections" yaml:"sections"`
	Conclusion     string    `json:"conclusion" yaml:"conclusion"`
}

// SectionsContent maps section titles to authored text and remembers the
// order in which titles were first stored.
type SectionsContent struct {
	titles  []string
	content map[string]string
}

// Set stores text for title. Re-setting a title keeps its original position.
func (c *SectionsContent) Set(title, text string) {
	if c.content == nil {
		c.content = make(map[string]string)
	}
	if _, ok := c.content[title]; !ok {
		c.titles = append(c.titles, title)
	}
	c.content[title] = text
}

func (c SectionsContent) Get(title string) (string, bool) {
	text, ok := c.content[title]
	return text, ok
}

// Titles returns stored titles in insertion order.
func (c SectionsContent) Titles() []string {
	out := make([]string, len(c.titles))
	copy(out, c.titles)
	return out
}

func (c SectionsContent) Len() int { return len(c.titles) }

// Clone returns an independent copy.
func (c SectionsContent) Clone() SectionsContent {
	out := SectionsContent{
		titles:  c.Titles(),
		content: make(map[string]string, len(c.content)),
	}
	for k, v := range c.content {
		out.content[k] = v
	}
	return out
}

// State is the value threaded through the pipeline. Each stage takes the
// previous State and returns a new one; nothing else holds it.
type State struct {
	Topic         string
	AudienceLevel AudienceLevel
	Outline       *GuideOutline
	Sections      SectionsContent

	OutlinePath string
	GuidePath   string
	Document    string
}

// clone copies the parts of s that a stage may change.
func (s State) clone() State {
	out := s
	out.Sections = s.Sections.Clone()
	if s.Outline != nil {
		o := *s.Outline
		o.Sections = append([]Section(nil), s.Outline.Sections...)
		out.Outline = &o
	}
	return out
}

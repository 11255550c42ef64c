package generator

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// PostProcessSection trims authored text and makes sure it opens with a
// heading, prepending "## <title>" when the model left it out.
func PostProcessSection(raw, title string) (string, error) {
	md := strings.TrimSpace(raw)
	if md == "" {
		return "", ErrEmptyCompletion
	}
	if _, ok := leadingHeading(md); ok {
		return md, nil
	}
	return "## " + title + "\n\n" + md, nil
}

// leadingHeading reports the text of the heading that opens md, if any.
func leadingHeading(md string) (string, bool) {
	src := []byte(md)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))
	h, ok := doc.FirstChild().(*ast.Heading)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(string(h.Text(src))), true
}

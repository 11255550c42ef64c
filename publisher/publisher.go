// Package publisher writes pipeline artifacts to an output directory.
package publisher

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"guide_creator/generator"
)

const (
	OutlineFile   = "guide_outline.json"
	GuideFile     = "complete_guide.md"
	GuideHTMLFile = "complete_guide.html"
)

// Writer persists the outline and the compiled guide under one directory.
// It satisfies generator.Sink.
type Writer struct {
	dir    string
	html   bool
	logger *slog.Logger
}

// Option customizes a Writer.
type Option func(*Writer)

// WithHTML also renders the guide to HTML next to the Markdown file.
func WithHTML(on bool) Option {
	return func(w *Writer) { w.html = on }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

func New(dir string, opts ...Option) (*Writer, error) {
	if dir == "" {
		return nil, errors.New("output directory is required")
	}
	w := &Writer{dir: dir, logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("component", "publisher")
	return w, nil
}

// SaveOutline writes raw re-indented with two spaces, overwriting any previous file.
func (w *Writer) SaveOutline(raw json.RawMessage) (string, error) {
	path := filepath.Join(w.dir, OutlineFile)
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", &generator.FileWriteError{Path: path, Err: fmt.Errorf("indenting outline: %w", err)}
	}
	buf.WriteByte('\n')
	if err := w.write(path, buf.Bytes()); err != nil {
		return "", err
	}
	w.logger.Info("outline saved", "path", path)
	return path, nil
}

// SaveGuide writes the Markdown guide and, when enabled, its HTML rendering.
func (w *Writer) SaveGuide(title, doc string) (string, error) {
	path := filepath.Join(w.dir, GuideFile)
	if err := w.write(path, []byte(doc)); err != nil {
		return "", err
	}
	w.logger.Info("guide saved", "path", path)

	if w.html {
		htmlPath := filepath.Join(w.dir, GuideHTMLFile)
		page, err := RenderHTML(title, doc)
		if err != nil {
			return "", &generator.FileWriteError{Path: htmlPath, Err: err}
		}
		if err := w.write(htmlPath, []byte(page)); err != nil {
			return "", err
		}
		w.logger.Info("guide html saved", "path", htmlPath)
	}
	return path, nil
}

func (w *Writer) write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &generator.FileWriteError{Path: filepath.Dir(path), Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &generator.FileWriteError{Path: path, Err: err}
	}
	return nil
}

// RenderHTML converts the guide Markdown into a standalone HTML page.
func RenderHTML(title, md string) (string, error) {
	body, err := mdToHTML(md)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	b.WriteString("<meta name=\"description\" content=\"" + html.EscapeString(defaultDigest(md, 160)) + "\">\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// defaultDigest is the first limit runes of the guide's text with
// whitespace collapsed and heading markers dropped.
func defaultDigest(md string, limit int) string {
	var words []string
	for _, f := range strings.Fields(md) {
		if strings.Trim(f, "#") == "" {
			continue
		}
		words = append(words, f)
	}
	runes := []rune(strings.Join(words, " "))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit])
}

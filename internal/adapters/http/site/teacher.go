package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strconv"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/okian/mood2emoji/internal/domain/mood"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// diagramCellWidth is the number of characters after "Polarity > " inside a
// diagram box, used to keep the box edges aligned for any threshold value.
const diagramCellWidth = 9

// TeacherNotes renders the teacher mode explanation. The source is markdown
// that may reference {{.Positive}} and {{.Negative}}; it is rendered to HTML
// and sanitized, and the output is cached per threshold pair.
type TeacherNotes struct {
	tmpl   *texttemplate.Template
	raw    []byte
	md     goldmark.Markdown
	policy *bluemonday.Policy

	mu    sync.Mutex
	key   mood.Thresholds
	html  template.HTML
	valid bool
}

// NewTeacherNotes parses src. Sources that are not valid templates are
// rendered verbatim.
func NewTeacherNotes(src []byte) *TeacherNotes {
	n := &TeacherNotes{
		raw:    src,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
	if t, err := texttemplate.New("teacher").Option("missingkey=zero").Parse(string(src)); err == nil {
		n.tmpl = t
	}
	return n
}

// LoadTeacherNotes reads a markdown file; an empty path yields the built-in notes.
func LoadTeacherNotes(path string) (*TeacherNotes, error) {
	if path == "" {
		return NewTeacherNotes(defaultTeacherNotes), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTeacherNotes, err)
	}
	return NewTeacherNotes(b), nil
}

// Render returns sanitized HTML for the given thresholds.
func (n *TeacherNotes) Render(t mood.Thresholds) (template.HTML, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.valid && n.key == t {
		return n.html, nil
	}

	src, err := n.Markdown(t)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := n.md.Convert(src, &out); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTeacherNotes, err)
	}

	//nolint:gosec // sanitized by bluemonday
	n.html = template.HTML(n.policy.SanitizeBytes(out.Bytes()))
	n.key, n.valid = t, true
	return n.html, nil
}

// Markdown returns the notes with the thresholds filled in, before HTML rendering.
func (n *TeacherNotes) Markdown(t mood.Thresholds) ([]byte, error) {
	if n.tmpl == nil {
		return n.raw, nil
	}
	var buf bytes.Buffer
	if err := n.tmpl.Execute(&buf, newDiagramValues(t)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTeacherNotes, err)
	}
	return buf.Bytes(), nil
}

type diagramValues struct {
	Positive, Negative       string
	PositivePad, NegativePad string
}

func newDiagramValues(t mood.Thresholds) diagramValues {
	pos := formatThreshold(t.Positive)
	neg := formatThreshold(t.Negative)
	return diagramValues{
		Positive:    pos,
		Negative:    neg,
		PositivePad: pad(pos),
		NegativePad: pad(neg),
	}
}

func formatThreshold(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// pad fills the rest of the diagram cell after "<value>?".
func pad(value string) string {
	n := diagramCellWidth - len(value) - 1
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}

// Package site serves the browser form for detecting the mood of a sentence.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/okian/mood2emoji/internal/adapters/http/api"
	app "github.com/okian/mood2emoji/internal/app"
	"github.com/okian/mood2emoji/internal/domain/mood"
	"github.com/okian/mood2emoji/internal/domain/sentiment"
	"github.com/okian/mood2emoji/pkg/logger"
	"github.com/okian/mood2emoji/pkg/metrics"
)

const maxFormBytes = 16 << 10

// WarningEmpty is shown when the form is submitted without text.
const WarningEmpty = "Please enter a sentence first!"

// Examples are the sample sentences listed under the form.
var Examples = []string{
	"I aced my math test!",
	"The weather is okay today.",
	"I'm feeling down about the game.",
	"Science class was amazing!",
	"I don't know how I feel.",
}

// Detector is what the page needs from the detection service.
type Detector interface {
	Detect(ctx context.Context, text string) (mood.Result, error)
	Explain(text string) []sentiment.Assessment
	MaxChars() int
	Thresholds() mood.Thresholds
}

// Handler renders the form and its results.
type Handler struct {
	deps   Detector
	page   *template.Template
	notes  *TeacherNotes
	logger logger.Logger
}

// Option configures the Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithTeacherNotes replaces the built-in teacher mode notes.
func WithTeacherNotes(n *TeacherNotes) Option {
	return func(h *Handler) {
		if n != nil {
			h.notes = n
		}
	}
}

// New parses the embedded page template.
func New(deps Detector, opts ...Option) (*Handler, error) {
	if deps == nil {
		return nil, errors.New("site: detector is nil")
	}
	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	h := &Handler{
		deps:   deps,
		page:   page,
		notes:  NewTeacherNotes(defaultTeacherNotes),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Register attaches the page and its static assets to mux.
func (h *Handler) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/", api.RequestIDMiddleware(api.MetricsMiddleware(h.ServeRoot, "root")))
	static := http.StripPrefix("/static/", http.FileServer(FS()))
	mux.HandleFunc("/static/", api.MetricsMiddleware(static.ServeHTTP, "static"))
}

type pageData struct {
	Text         string
	Teacher      bool
	MaxChars     int
	Warning      string
	Result       *mood.Result
	Assessments  []sentiment.Assessment
	TeacherNotes template.HTML
	Examples     []string
}

// ServeRoot handles GET and POST on "/".
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	data := pageData{
		Text:     r.Form.Get("text"),
		Teacher:  isOn(r.Form.Get("teacher")),
		MaxChars: h.deps.MaxChars(),
		Examples: Examples,
	}

	if r.Method == http.MethodPost {
		h.detect(r.Context(), &data)
	}

	if data.Teacher {
		metrics.RecordTeacherModeView()
		notes, err := h.notes.Render(h.deps.Thresholds())
		if err != nil {
			h.logger.Error(r.Context(), "teacher notes render failed", logger.Error(err))
		}
		data.TeacherNotes = notes
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		h.logger.Error(r.Context(), "page render failed", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) detect(ctx context.Context, data *pageData) {
	if data.Text == "" {
		data.Warning = WarningEmpty
		return
	}

	res, err := h.deps.Detect(ctx, data.Text)
	switch {
	case errors.Is(err, app.ErrTooLong):
		data.Warning = fmt.Sprintf("Please keep it under %d characters.", data.MaxChars)
		return
	case err != nil:
		h.logger.Error(ctx, "detect failed", logger.Error(err))
		data.Warning = "Something went wrong, please try again."
		return
	}

	data.Result = &res
	if data.Teacher && res.Reason == mood.ReasonScored {
		data.Assessments = h.deps.Explain(data.Text)
	}
}

func isOn(v string) bool {
	switch v {
	case "on", "1", "true", "yes":
		return true
	}
	return false
}

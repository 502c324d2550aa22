package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	app "github.com/okian/mood2emoji/internal/app"
	"github.com/okian/mood2emoji/internal/domain/mood"
	"github.com/okian/mood2emoji/internal/domain/sentiment"
	"github.com/okian/mood2emoji/pkg/logger"
)

// maxBodyBytes bounds the request body; sentences are short.
const maxBodyBytes = 16 << 10

// detectRequest mirrors the OpenAPI schema for POST /api/detect.
type detectRequest struct {
	Text    string `json:"text"`
	Explain bool   `json:"explain"`
}

type detectResponse struct {
	mood.Result
	Assessments []sentiment.Assessment `json:"assessments,omitempty"`
}

// DetectHandler handles mood detection requests.
type DetectHandler struct {
	deps   Detector
	logger logger.Logger
}

// NewDetectHandler creates a new detect handler.
func NewDetectHandler(deps Detector, l logger.Logger) *DetectHandler {
	return &DetectHandler{deps: deps, logger: l}
}

// HandlePostDetect handles POST /api/detect requests.
func (h *DetectHandler) HandlePostDetect(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_detect"
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	var req detectRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Detect(r.Context(), req.Text)
	switch {
	case errors.Is(err, app.ErrTooLong):
		writeError(w, http.StatusBadRequest, "too_long", WrapKind(op, ErrTooLong, err))
		return
	case err != nil:
		h.logger.Error(r.Context(), "detect failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", NewKind(op, ErrInternal))
		return
	}

	resp := detectResponse{Result: res}
	if req.Explain && res.Reason == mood.ReasonScored && strings.TrimSpace(req.Text) != "" {
		resp.Assessments = h.deps.Explain(req.Text)
	}
	writeJSON(w, http.StatusOK, resp)
}

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/mood2emoji/internal/adapters/http/api"
	app "github.com/okian/mood2emoji/internal/app"
	"github.com/okian/mood2emoji/internal/domain/mood"
	"github.com/okian/mood2emoji/internal/domain/sentiment"
	. "github.com/smartystreets/goconvey/convey"
)

// failingDetector always errors.
type failingDetector struct {
	err error
}

func (f failingDetector) Detect(context.Context, string) (mood.Result, error) {
	return mood.Result{}, f.err
}

func (f failingDetector) Explain(string) []sentiment.Assessment { return nil }

func (f failingDetector) Stats() app.Stats { return app.Stats{} }

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, nil).Register(context.Background(), mux)
	return mux
}

func postDetect(mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/detect", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		mux := newMux(app.New())

		Convey("Then health endpoint should serve metrics", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "mood2emoji_detector")
		})

		Convey("And stats endpoint should report counters", func() {
			postDetect(mux, `{"text":"I love pizza!"}`)

			req := httptest.NewRequest(http.MethodGet, "/stats", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
			var st app.Stats
			So(json.Unmarshal(w.Body.Bytes(), &st), ShouldBeNil)
			So(st.Happy, ShouldEqual, 1)
			So(st.Total, ShouldEqual, 1)
		})

		Convey("And stats rejects other methods", func() {
			req := httptest.NewRequest(http.MethodPost, "/stats", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And registering on a nil mux panics", func() {
			So(func() { api.NewServer(app.New(), nil).Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}

func TestDetectHandler(t *testing.T) {
	Convey("Given the detect endpoint", t, func() {
		mux := newMux(app.New())

		decode := func(w *httptest.ResponseRecorder) map[string]any {
			var out map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
			return out
		}

		Convey("When posting a happy sentence", func() {
			w := postDetect(mux, `{"text":"I love pizza!"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")

			body := decode(w)
			So(body["emoji"], ShouldEqual, "😀")
			So(body["explanation"], ShouldEqual, "Sounds happy and positive!")
			So(body["category"], ShouldEqual, "happy")
			So(body["reason"], ShouldEqual, "scored")
			So(body["polarity"], ShouldAlmostEqual, 0.5, 1e-9)
			So(body, ShouldNotContainKey, "assessments")
		})

		Convey("When asking for an explanation", func() {
			w := postDetect(mux, `{"text":"not very happy","explain":true}`)
			body := decode(w)
			assessments, ok := body["assessments"].([]any)
			So(ok, ShouldBeTrue)
			So(len(assessments), ShouldEqual, 1)
		})

		Convey("When posting a filtered sentence", func() {
			body := decode(postDetect(mux, `{"text":"you are dumb"}`))
			So(body["reason"], ShouldEqual, "filtered")
			So(body["explanation"], ShouldEqual, "Let's keep our words kind and respectful!")
		})

		Convey("When posting empty text", func() {
			body := decode(postDetect(mux, `{"text":""}`))
			So(body["reason"], ShouldEqual, "empty")
			So(body["explanation"], ShouldEqual, "Please type something!")
		})

		Convey("When posting malformed JSON", func() {
			w := postDetect(mux, `{"text":`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["code"], ShouldEqual, "bad_request")
		})

		Convey("When posting unknown fields", func() {
			w := postDetect(mux, `{"sentence":"hi"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When posting a sentence over the limit", func() {
			w := postDetect(mux, fmt.Sprintf(`{"text":%q}`, strings.Repeat("a", 201)))
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["code"], ShouldEqual, "too_long")
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/detect", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, http.MethodPost)
		})
	})

	Convey("Given a detector that fails", t, func() {
		mux := newMux(failingDetector{err: errors.New("boom")})
		w := postDetect(mux, `{"text":"hello"}`)

		Convey("Then the handler answers 500 without leaking the cause", func() {
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldNotContainSubstring, "boom")
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given the request id middleware", t, func() {
		mux := newMux(app.New())

		Convey("When no id is supplied one is generated", func() {
			w := postDetect(mux, `{"text":"hi"}`)
			So(len(w.Header().Get(api.HeaderRequestID)), ShouldEqual, 36)
		})

		Convey("When a valid id is supplied it is echoed", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", http.NoBody)
			req.Header.Set(api.HeaderRequestID, "abc-123")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get(api.HeaderRequestID), ShouldEqual, "abc-123")
		})

		Convey("When an invalid id is supplied it is replaced", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", http.NoBody)
			req.Header.Set(api.HeaderRequestID, "bad id\n")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get(api.HeaderRequestID), ShouldNotEqual, "bad id\n")
			So(len(w.Header().Get(api.HeaderRequestID)), ShouldEqual, 36)
		})
	})
}

func TestKindErrors(t *testing.T) {
	Convey("Given kind errors", t, func() {
		cause := errors.New("eof")
		err := api.WrapKind("api.op", api.ErrBadRequest, cause)

		So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
		So(errors.Is(err, cause), ShouldBeTrue)
		So(err.Error(), ShouldEqual, "api.op: bad request: eof")

		plain := api.NewKind("api.op", api.ErrInternal)
		So(errors.Is(plain, api.ErrInternal), ShouldBeTrue)
		So(plain.Error(), ShouldEqual, "api.op: internal error")
	})
}

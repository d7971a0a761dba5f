package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/kingshuk-14/sathiAI/internal/analysis"
	"github.com/kingshuk-14/sathiAI/pkg/answer"
	"github.com/kingshuk-14/sathiAI/pkg/llm"
	"github.com/kingshuk-14/sathiAI/pkg/message"
)

type fakeAnalyzer struct {
	res *analysis.Result
	err error
	got analysis.Submission
}

func (f *fakeAnalyzer) Analyze(_ context.Context, sub analysis.Submission) (*analysis.Result, error) {
	f.got = sub
	return f.res, f.err
}

func newTestAnalyzeRouter(a Analyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAnalyzeHandler(a)
	r.POST("/api/analyze", h.Analyze)
	r.POST("/api/classify", Classify)
	return r
}

func TestAnalyze_JSON(t *testing.T) {
	fake := &fakeAnalyzer{res: &analysis.Result{
		Classification: message.Classification{Category: message.CategoryBank, HasLink: true, HasUrgency: true, RiskDefault: message.RiskHigh},
		Sections:       answer.Sections{Scam: "Likely scam.", Importance: "High", About: "KYC", Action: "Ignore"},
		Risk:           message.RiskHigh,
		Urgency:        answer.UrgencyHigh,
	}}
	r := newTestAnalyzeRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(`{"text":"URGENT: KYC blocked"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "URGENT: KYC blocked", fake.got.Text)
	assert.Equal(t, "session:abc", fake.got.SessionKey)

	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	assert.Equal(t, nil, err)
	assert.Equal(t, "bank", body["category"])
	assert.Equal(t, "high", body["risk"])
	assert.Equal(t, "high", body["urgency"])
	assert.Equal(t, false, body["degraded"])
	assert.Equal(t, "Likely scam.", body["sections"].(map[string]any)["scam"])

	_, hasDefault := body["risk_default"]
	assert.Equal(t, false, hasDefault)
	_, hasExtracted := body["extracted_text"]
	assert.Equal(t, false, hasExtracted)
}

func TestAnalyze_Multipart(t *testing.T) {
	fake := &fakeAnalyzer{res: &analysis.Result{ExtractedText: "Your OTP is 1234"}}
	r := newTestAnalyzeRouter(fake)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("text", "")
	part, _ := mw.CreateFormFile("image", "shot.png")
	part.Write([]byte("png bytes"))
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []byte("png bytes"), fake.got.Image)
	assert.Equal(t, "shot.png", fake.got.ImageName)
	assert.Equal(t, true, strings.HasPrefix(fake.got.SessionKey, "ip:"))
	assert.Equal(t, true, strings.Contains(w.Body.String(), `"extracted_text":"Your OTP is 1234"`))
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"empty input", analysis.ErrEmptyInput, http.StatusBadRequest, "Please enter text or upload an image."},
		{"ocr failure", errors.Join(analysis.ErrOCRFailed, errors.New("tesseract down")), http.StatusUnprocessableEntity, "Failed to read image. Please try again or paste text instead."},
		{"busy", analysis.ErrBusy, http.StatusConflict, "An analysis is already running for this session."},
		{"relay", &llm.RelayError{StatusCode: 503, Message: "Model is loading"}, http.StatusBadGateway, "Error: Model is loading"},
		{"relay without message", &llm.RelayError{StatusCode: 500}, http.StatusBadGateway, "Error: API error: 500"},
		{"invalid response", llm.ErrInvalidResponse, http.StatusBadGateway, "Error: Invalid response format from API"},
		{"wrapped invalid response", fmt.Errorf("model call: %w", llm.ErrInvalidResponse), http.StatusBadGateway, "Error: Invalid response format from API"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestAnalyzeRouter(&fakeAnalyzer{err: tt.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(`{"text":"hi"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.msg, decodeError(t, w))
		})
	}
}

func TestAnalyze_BadBody(t *testing.T) {
	fake := &fakeAnalyzer{}
	r := newTestAnalyzeRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(`{"text":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "", fake.got.Text)
}

func TestClassify(t *testing.T) {
	r := newTestAnalyzeRouter(&fakeAnalyzer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/classify", strings.NewReader(`{"text":"Your OTP is 4521, valid for 10 minutes."}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "otp", body["category"])
	assert.Equal(t, false, body["has_link"])

	prompt, _ := body["prompt"].(string)
	assert.Equal(t, true, strings.Contains(prompt, "OTP MESSAGE RULES"))
	assert.Equal(t, true, strings.Contains(prompt, "Your OTP is 4521, valid for 10 minutes."))
}

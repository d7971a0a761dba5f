package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kingshuk-14/sathiAI/pkg/llm"
)

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	counter := HTTPRequestsTotal.WithLabelValues("GET", "/items/:id", "418")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/items/1", "/items/2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusTeapot, w.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestMiddleware_Unmatched(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())

	counter := HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")
	before := testutil.ToFloat64(counter)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

type stubUpstream struct {
	err error
}

func (s stubUpstream) Provider() string { return "stub" }

func (s stubUpstream) Chat(context.Context, llm.ChatRequest) (*llm.ChatResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.ChatResponse{}, nil
}

func TestInstrumentUpstream(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status string
	}{
		{"success", nil, "ok"},
		{"provider status", &llm.RelayError{StatusCode: 429, Message: "slow down"}, "429"},
		{"transport error", errors.New("dial tcp: refused"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := UpstreamRequests.WithLabelValues("stub", tt.status)
			before := testutil.ToFloat64(counter)

			u := InstrumentUpstream(stubUpstream{err: tt.err})
			_, err := u.Chat(context.Background(), llm.ChatRequest{})

			assert.Equal(t, tt.err, err)
			assert.Equal(t, "stub", u.Provider())
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

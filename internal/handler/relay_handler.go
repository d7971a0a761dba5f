package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingshuk-14/sathiAI/pkg/llm"
)

// RelayHandler forwards chat requests to the configured provider so the API
// key never leaves the server.
type RelayHandler struct {
	upstream llm.Upstream
}

// NewRelayHandler accepts a nil upstream, in which case every request is
// answered with "API key not configured".
func NewRelayHandler(upstream llm.Upstream) *RelayHandler {
	return &RelayHandler{upstream: upstream}
}

func (h *RelayHandler) Chat(c *gin.Context) {
	if h.upstream == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": llm.ErrMissingAPIKey.Error()})
		return
	}

	var req llm.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages are required"})
		return
	}

	resp, err := h.upstream.Chat(c.Request.Context(), req)
	if err != nil {
		var relayErr *llm.RelayError
		if errors.As(err, &relayErr) && relayErr.StatusCode > 0 {
			slog.Warn("upstream returned an error", "provider", h.upstream.Provider(), "status", relayErr.StatusCode, "error", relayErr.Message)
			c.JSON(relayErr.StatusCode, gin.H{"error": relayErr.Error()})
			return
		}

		slog.Error("error calling upstream", "provider", h.upstream.Provider(), "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error from upstream API"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MethodNotAllowed answers any method the routes do not register.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}

package handler

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
)

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	paramLimit := c.Query(name)

	if paramLimit == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(paramLimit)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", paramLimit, "error", err)
		return defaultValue
	}

	return parsedValue
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset := getQueryInt("offset", 0, c)
	if offset < 0 {
		slog.Warn("invalid query parameter, using default", "param", "offset", "value", offset, "default", 0)
		return 0
	}
	return offset
}

// sessionKey identifies the caller for the in-flight guard.
func sessionKey(c *gin.Context) string {
	if id := c.GetHeader("X-Session-ID"); id != "" {
		return "session:" + id
	}
	return "ip:" + c.ClientIP()
}

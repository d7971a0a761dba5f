package handler

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kingshuk-14/sathiAI/internal/metrics"
)

type Handlers struct {
	Relay   *RelayHandler
	Analyze *AnalyzeHandler
	Stats   *StatsHandler
	Health  *HealthHandler
}

// NewRouter registers every route. Origins of ["*"] allow any origin.
func NewRouter(h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), metrics.Middleware())

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	corsConfig := cors.Config{
		AllowMethods:              []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:              []string{"Origin", "Content-Type", "X-Session-ID"},
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	r.Use(cors.New(corsConfig))

	r.HandleMethodNotAllowed = true
	r.NoMethod(MethodNotAllowed)

	api := r.Group("/api")
	post := func(path string, handler gin.HandlerFunc) {
		api.POST(path, handler)
		api.OPTIONS(path, optionsOK)
	}

	post("/chat", h.Relay.Chat)
	post("/analyze", h.Analyze.Analyze)
	post("/classify", Classify)

	api.GET("/stats", h.Stats.GetStats)
	api.GET("/analyses", h.Stats.GetRecent)
	api.GET("/health", h.Health.GetHealth)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func optionsOK(c *gin.Context) {
	c.Status(http.StatusOK)
}

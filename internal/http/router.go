package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/Leganyst/service-provider-api/internal/http/handlers"
	httpMW "github.com/Leganyst/service-provider-api/internal/http/middleware"
	"github.com/Leganyst/service-provider-api/internal/logging"
)

// APIPrefix — версия REST API.
const APIPrefix = "/v1_0"

type RouterConfig struct {
	ProviderHandler *httpH.ProviderHandler
	HealthHandler   *httpH.HealthHandler

	Logger      *logging.Logger
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Logger))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group(APIPrefix)
	if h := cfg.ProviderHandler; h != nil {
		// Чтение и поиск (без user-id)
		api.GET("/service-provider/:id", h.Get)
		api.GET("/service-provider/:id/reviews", h.ListReviews)
		api.GET("/service-providers", h.List)
		api.POST("/service-providers", h.Filter)
		api.GET("/service-providers/recommend", h.RecommendQuery)
		api.POST("/service-providers/recommend", h.Recommend)

		// Запись (нужен user-id)
		owned := api.Group("/", httpMW.RequireCaller())
		owned.POST("/service-provider", h.Create)
		owned.PUT("/service-provider/:id", h.Update)
		owned.DELETE("/service-provider/:id", h.Delete)
		owned.POST("/service-provider/:id/review", h.AddReview)
	}

	return r
}

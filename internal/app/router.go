package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/autoservice-booking-api/api/swagger"
	"github.com/noah-isme/autoservice-booking-api/internal/handler"
	internalmiddleware "github.com/noah-isme/autoservice-booking-api/internal/middleware"
	"github.com/noah-isme/autoservice-booking-api/internal/service"
	"github.com/noah-isme/autoservice-booking-api/pkg/config"
	"github.com/noah-isme/autoservice-booking-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/autoservice-booking-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/autoservice-booking-api/pkg/middleware/requestid"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Scheduling   *handler.SchedulingHandler
	Reservations *handler.ReservationHandler
	Metrics      *handler.MetricsHandler
}

// NewRouter mounts the probes, metrics, docs and the booking API.
func NewRouter(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, tokens *service.CustomerTokenService, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(corsmiddleware.DefaultOptions(cfg.CORS.AllowedOrigins)))
	r.Use(internalmiddleware.Metrics(metrics))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.WithResponseMeta())
	api.Use(internalmiddleware.OptionalCustomer(tokens))

	api.GET("/services", h.Scheduling.Services)
	api.GET("/metrics/summary", h.Metrics.Summary)

	scheduling := api.Group("/scheduling")
	scheduling.GET("/suggestions", h.Scheduling.Suggestions)
	scheduling.GET("/suggestions/export", h.Scheduling.Export)
	scheduling.GET("/slots", h.Scheduling.Slots)
	scheduling.GET("/hours", h.Scheduling.Hours)

	reservations := api.Group("/reservations")
	reservations.POST("", h.Reservations.Create)
	reservations.DELETE("/:id", h.Reservations.Cancel)

	return r
}

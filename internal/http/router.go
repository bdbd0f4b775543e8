package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/fixmycity/backend/internal/config"
	"github.com/fixmycity/backend/internal/http/handlers"
	"github.com/fixmycity/backend/internal/http/middleware"
	"github.com/fixmycity/backend/internal/service"

	_ "github.com/fixmycity/backend/docs"
)

// Deps are the collaborators the router wires into handlers. Store is
// required. Routes backed by a nil service or gatherer are not mounted.
type Deps struct {
	Store      handlers.Store
	Complaints *service.ComplaintService
	Hotspots   *service.HotspotService
	Gatherer   prometheus.Gatherer
}

func Router(cfg config.Config, deps Deps, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:      deps.Store,
		Complaints: deps.Complaints,
		Hotspots:   deps.Hotspots,
		Validator:  validator.New(),
		Logger:     logger,
		Defaults: handlers.Defaults{
			TopZones:          cfg.TopZones,
			ClusterEpsKm:      cfg.ClusterEpsKm,
			ClusterMinSamples: cfg.ClusterMinSamples,
		},
	}

	if deps.Complaints != nil {
		h.Resolver = deps.Complaints.Resolver
	}

	r.GET("/healthz", h.Healthz)
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	api.Use(middleware.Timeout(cfg.RequestTimeout))
	{
		api.GET("/complaints", h.ListComplaints)
		api.GET("/analytics", h.Analytics)
	}
	if deps.Complaints != nil {
		api.POST("/complaints", h.CreateComplaint)
	}
	if h.Resolver != nil {
		api.POST("/geocode", h.Geocode)
	}
	if deps.Hotspots != nil {
		api.GET("/complaints/priority-zones", h.PriorityZones)
		api.GET("/complaints/clusters", h.Clusters)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.GET("/officer/:officer_id/actions", h.OfficerActions)
	}
	if deps.Complaints != nil {
		admin.POST("/complaints/:id/resolve", h.ResolveComplaint)
		admin.POST("/complaints/:id/unresolve", h.UnresolveComplaint)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

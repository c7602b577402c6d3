package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/nereus/internal/config"
	"github.com/Nixie-Tech-LLC/nereus/internal/db"
	"github.com/Nixie-Tech-LLC/nereus/internal/engine"
	"github.com/Nixie-Tech-LLC/nereus/internal/flussonic"
	"github.com/Nixie-Tech-LLC/nereus/internal/http/api"
	adminapi "github.com/Nixie-Tech-LLC/nereus/internal/http/api/admin/endpoints"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store, eng *engine.Engine, remote *flussonic.Client) {
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		adminapi.AuthPublicModule(cfg.JWTSecret, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
	},
		adminapi.AuthSessionModule(cfg.JWTSecret, store),
		adminapi.StreamModule(store, remote),
		adminapi.PlaylistModule(store),
		adminapi.ScheduleModule(store),
		adminapi.SchedulerModule(eng),
		adminapi.LogModule(store),
	)
}

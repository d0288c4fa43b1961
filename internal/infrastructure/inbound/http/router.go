package http_server

import (
	"time"

	ports "board-post-service/internal/domain/ports/output"
	"board-post-service/internal/domain/ports/output/upload"
	"board-post-service/internal/infrastructure/config"
	"board-post-service/internal/infrastructure/inbound/http/middleware"
	post_http "board-post-service/internal/infrastructure/inbound/http/post"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const uploadField = "file"

// NewRouter builds the gin engine with the board routes mounted.
func NewRouter(
	cfg config.HTTPServer,
	jwtSecret []byte,
	postAPI *post_http.PostHTTPAPI,
	uploader upload.Uploader,
	log ports.Logger,
	metrics ports.MetricsProvider,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(log, metrics))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	if cfg.StaticDir != "" {
		r.Static("/assets", cfg.StaticDir)
	}

	postAPI.RegisterRoutes(r,
		middleware.Auth(jwtSecret, log),
		middleware.SingleFile(uploadField, uploader, log),
	)

	return r
}

func corsConfig(origins []string) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		corsCfg.AllowCredentials = false
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	return corsCfg
}

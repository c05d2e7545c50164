package routes

import (
	"net/http"
	"time"

	"multimodel-api/config"
	"multimodel-api/handlers"
	"multimodel-api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, pipeline handlers.ChatPipeline, limiter services.RateLimiter) *gin.Engine {
	if !cfg.IsDevelopment() && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware())
	router.Use(NoCacheMiddleware())
	router.Use(corsMiddleware(cfg))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithDecompressFn(gzip.DefaultDecompressHandle)))

	chatHandler := handlers.NewChatHandler(pipeline, limiter, cfg)
	healthHandler := handlers.NewHealthHandler(cfg)

	router.NoMethod(handlers.MethodNotAllowed)
	router.GET("/health", healthHandler.Health)

	api := router.Group("/api")
	{
		api.POST("/chat", chatHandler.Chat)
		api.OPTIONS("/chat", chatHandler.Preflight)
		api.GET("/health", healthHandler.Health)
	}

	return router
}

// corsMiddleware answers CORS only for allowed origins. Requests from any other
// origin pass through untouched and simply get no Access-Control-Allow-Origin.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	allowed := originAllowed(cfg)
	handler := cors.New(corsConfig(cfg, allowed))

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" && !allowed(origin) {
			c.Request.Header.Del("Origin")
		}
		handler(c)
	}
}

// originAllowed matches the configured origins, or any origin under CORS_ALLOW_ALL.
func originAllowed(cfg *config.Config) func(string) bool {
	origins := make(map[string]bool, len(cfg.CORS.AllowedOrigins))
	for _, origin := range cfg.CORS.AllowedOrigins {
		origins[origin] = true
	}
	return func(origin string) bool {
		return cfg.CORS.AllowAll || origins[origin]
	}
}

func corsConfig(cfg *config.Config, allowed func(string) bool) cors.Config {
	return cors.Config{
		AllowOriginFunc:           allowed,
		AllowMethods:              cfg.CORS.AllowedMethods,
		AllowHeaders:              cfg.CORS.AllowedHeaders,
		ExposeHeaders:             []string{"Content-Length", "X-Request-ID"},
		AllowCredentials:          cfg.CORS.AllowCredentials,
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}
}

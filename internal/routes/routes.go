package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"gera-relatorio-backend/internal/cep"
	"gera-relatorio-backend/internal/config"
	"gera-relatorio-backend/internal/handlers"
	"gera-relatorio-backend/internal/middleware"
	"gera-relatorio-backend/internal/store"
)

// Deps carries everything the route handlers need.
type Deps struct {
	Store store.Documents
	Cep   *cep.Client
	Cfg   config.Config
	Log   zerolog.Logger
}

func Register(router *gin.Engine, deps Deps) {
	router.Use(corsMiddleware(deps.Cfg.AllowedOriginsRaw))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "gera-relatorio-backend"})
	})

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	documentsHandler := handlers.NewDocumentsHandler(deps.Store, deps.Cfg, deps.Log)
	defaultsHandler := handlers.NewDefaultsHandler(deps.Store)
	cepHandler := handlers.NewCepHandler(deps.Cep)

	api := router.Group("/api")

	if deps.Cfg.AuthEnabled() {
		authHandler := handlers.NewAuthHandler(deps.Cfg)
		api.POST("/auth/token", authHandler.Token)
		api.Use(middleware.AuthRequired(deps.Cfg.JwtSecret))
	}

	api.GET("/flavors", documentsHandler.Flavors)

	api.GET("/documents/:slug", documentsHandler.List)
	api.POST("/documents/:slug", documentsHandler.Create)
	api.GET("/documents/:slug/:id", documentsHandler.Get)
	api.PUT("/documents/:slug/:id", documentsHandler.Update)
	api.DELETE("/documents/:slug/:id", documentsHandler.Delete)

	api.GET("/documents/:slug/:id/pdf", documentsHandler.PDF)
	api.GET("/documents/:slug/:id/share", documentsHandler.Share)
	api.GET("/documents/:slug/:id/share.txt", documentsHandler.ShareTxt)
	api.POST("/documents/:slug/:id/share/email", documentsHandler.ShareEmail)

	api.GET("/defaults/:key", defaultsHandler.Get)
	api.PUT("/defaults/:key", defaultsHandler.Put)

	api.GET("/cep/:code", cepHandler.Lookup)
}

func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

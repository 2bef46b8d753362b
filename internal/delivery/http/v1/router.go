package v1

import (
	"fmt"
	"net/http"

	"go-contact-backend/config"
	"go-contact-backend/internal/delivery/http/middleware"
	"go-contact-backend/internal/delivery/http/response"
	"go-contact-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		response.Error(c, http.StatusInternalServerError, domain.MsgUnexpected, fmt.Sprint(recovered))
		c.Abort()
	}))
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	// Wrong method on a known route gets 405 plus the Allow header.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.Header("Allow", "POST, OPTIONS")
		response.Error(c, http.StatusMethodNotAllowed, "Methode nicht erlaubt.", "")
	})

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational")
	})

	// Contact form (no auth required); submissions are rate limited per IP.
	limit := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		RPS:   deps.Config.RateLimitRPS,
		Burst: deps.Config.RateLimitBurst,
	})
	NewContactHandler(api, r, limit, deps.ContactUC)

	// Everything else belongs to the static site.
	if deps.Config.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(deps.Config.StaticDir))
		r.NoRoute(func(c *gin.Context) {
			fileServer.ServeHTTP(c.Writer, c.Request)
		})
	} else {
		r.NoRoute(func(c *gin.Context) {
			response.Error(c, http.StatusNotFound, "Nicht gefunden.", "")
		})
	}

	return r
}

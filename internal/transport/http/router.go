package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/blog-platform/internal/token"
	"github.com/ErlanBelekov/blog-platform/internal/transport/http/handler"
	"github.com/ErlanBelekov/blog-platform/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, tokens *token.Service, authHandler *handler.AuthHandler, userHandler *handler.UserHandler, postHandler *handler.PostHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Guard(tokens))

	// Public landing page.
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "blog-platform"})
	})

	auth := r.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/verify", authHandler.VerifyEmail)
	auth.POST("/resend", authHandler.ResendCode)

	// User-namespaced pages. The guard has already redirected anyone whose
	// token does not own :username.
	user := r.Group("/:username")
	user.GET("/home", userHandler.Home)
	user.GET("/posts", postHandler.List)
	user.POST("/posts", postHandler.Create)

	return r
}

package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appsvc "jobtracker/internal/app"
	"jobtracker/internal/bootstrap"
	"jobtracker/internal/repository"
	"jobtracker/internal/transport/http/handler"
	"jobtracker/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(corsConfig(app.Config.CORS.AllowedOrigins)))

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/health", healthHandler.Check)
	router.GET("/", healthHandler.Root)

	appRepo := repository.NewApplicationRepository(app.DB)
	userRepo := repository.NewUserRepository(app.DB)
	appService := appsvc.NewApplicationService(appRepo)
	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	jobHandler := handler.NewJobHandler(appService)
	authHandler := handler.NewAuthHandler(authService)

	// Anonymous requests see every record; a valid bearer token scopes the
	// whole group to its owner.
	jobs := router.Group("/api/jobs")
	jobs.Use(middleware.OptionalAuthJWT(app.Config.Auth.JWTSecret))
	jobs.GET("/", jobHandler.List)
	jobs.POST("/", jobHandler.Create)
	jobs.GET("/stats/summary", jobHandler.Stats)
	jobs.GET("/:id", jobHandler.Get)
	jobs.PUT("/:id", jobHandler.Update)
	jobs.DELETE("/:id", jobHandler.Delete)

	auth := router.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", middleware.OptionalAuthJWT(app.Config.Auth.JWTSecret), authHandler.Profile)

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			cfg.AllowOrigins = nil
			return cfg
		}
	}
	cfg.AllowOrigins = allowedOrigins
	return cfg
}

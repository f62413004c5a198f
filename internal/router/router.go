package router

import (
	"github.com/finbook/finbook/internal/config"
	"github.com/finbook/finbook/internal/handlers"
	"github.com/finbook/finbook/internal/middleware"
	"github.com/finbook/finbook/internal/repository"
	"github.com/finbook/finbook/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers onto a gin engine. The
// store handle is passed in rather than held globally so tests can run
// the full router against an in-memory database.
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)

	tokenService := services.NewTokenService(cfg.JWT.Secret)
	authService := services.NewAuthService(userRepo, tokenService)
	ledgerService := services.NewLedgerService(eventRepo)
	exportService := services.NewExportService(userRepo, eventRepo, cfg.ExportSigningKey)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	authHandler := handlers.NewAuthHandler(authService)
	eventHandler := handlers.NewEventHandler(ledgerService, exportService)

	r := gin.Default()
	r.Use(cors.Default())

	r.POST("/sign-up", authHandler.SignUp)
	r.POST("/sign-in", authHandler.SignIn)

	events := r.Group("/financial-events")
	events.Use(authMiddleware.RequireAuth())
	{
		events.POST("", eventHandler.CreateEvent)
		events.GET("", eventHandler.ListEvents)
		events.GET("/sum", eventHandler.SumEvents)
		events.GET("/export", eventHandler.ExportEvents)
	}

	// Custom UI page so the authorize dialog accepts a bare token; the
	// rest of the swagger assets come from gin-swagger.
	wrapped := ginSwagger.WrapHandler(swaggerFiles.Handler)
	r.GET("/swagger/*any", func(c *gin.Context) {
		if any := c.Param("any"); any == "/" || any == "/index.html" {
			handlers.SwaggerUIWithBearerFix()(c)
			return
		}
		wrapped(c)
	})

	return r
}

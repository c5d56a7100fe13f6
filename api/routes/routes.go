package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/playtone/prizeplay-backend/internal/config"
	"github.com/playtone/prizeplay-backend/internal/handlers"
	"github.com/playtone/prizeplay-backend/internal/middleware"
	"github.com/playtone/prizeplay-backend/internal/models"
)

// HandlerDependencies holds the handlers wired into the router
type HandlerDependencies struct {
	AuthHandler     *handlers.AuthHandler
	GameHandler     *handlers.GameHandler
	PlayHandler     *handlers.PlayHandler
	UserHandler     *handlers.UserHandler
	DiscountHandler *handlers.DiscountHandler
	WinHandler      *handlers.WinHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Game catalogue is browsable without an account
		public.GET("/games", deps.GameHandler.GetGames)
		public.GET("/games/:id", deps.GameHandler.GetGameByID)
	}

	// Player routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		plays := protected.Group("/plays")
		{
			plays.POST("", deps.PlayHandler.CreatePlay)
			plays.POST("/quote", deps.PlayHandler.Quote)
			plays.GET("", deps.PlayHandler.GetPlays)
			plays.GET("/:id", deps.PlayHandler.GetPlayByID)
		}

		me := protected.Group("/me")
		{
			me.GET("", deps.UserHandler.GetProfile)
			me.GET("/balance", deps.UserHandler.GetBalance)
			me.POST("/topup", deps.UserHandler.Topup)
			me.GET("/wins", deps.UserHandler.GetWins)
			me.GET("/transactions", deps.UserHandler.GetTransactions)
		}
	}

	// Admin routes
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg))
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		games := admin.Group("/games")
		{
			games.POST("", deps.GameHandler.CreateGame)
			games.PUT("/:id", deps.GameHandler.UpdateGame)
			games.GET("/:id/outcomes", deps.GameHandler.GetPool)
			games.POST("/:id/outcomes", deps.GameHandler.CreateOutcome)
		}

		outcomes := admin.Group("/outcomes")
		{
			outcomes.PUT("/:id", deps.GameHandler.UpdateOutcome)
			outcomes.PATCH("/:id/active", deps.GameHandler.SetOutcomeActive)
			outcomes.GET("/:id/wins", deps.WinHandler.GetWinsByOutcome)
		}

		discounts := admin.Group("/discounts")
		{
			discounts.GET("", deps.DiscountHandler.GetDiscounts)
			discounts.POST("", deps.DiscountHandler.CreateDiscount)
			discounts.PUT("/:id", deps.DiscountHandler.UpdateDiscount)
			discounts.PATCH("/:id/active", deps.DiscountHandler.SetDiscountActive)
		}

		admin.GET("/users", deps.UserHandler.GetUsers)
		admin.PATCH("/wins/:id/claim", deps.WinHandler.UpdateClaimStatus)
	}

	return router
}

package routes

import (
	"Wordrush/controllers"
	"Wordrush/middleware"
	utils "Wordrush/utils"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Deps struct {
	Rooms    *controllers.RoomController
	Limiter  *middleware.RateLimiter
	Verifier *middleware.TokenVerifier
	Health   map[string]controllers.HealthCheck
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, deps Deps) {
	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/ping", controllers.Ping)
	router.GET("/healthz", controllers.Healthz(deps.Health))

	rooms := router.Group("/rooms")
	rooms.Use(middleware.NoStore(), middleware.Identity(deps.Verifier))
	{
		rooms.POST("", deps.Rooms.CreateRoom)
		rooms.POST("/matchmaking", deps.Rooms.Matchmake)
		rooms.POST("/join/:code", deps.Rooms.JoinRoom)

		room := rooms.Group("/:room_id")
		{
			room.POST("/leave", deps.Rooms.LeaveRoom)
			room.POST("/ready", deps.Rooms.SetReady)
			room.POST("/start", deps.Rooms.StartMatch)
			room.POST("/tutorial", deps.Rooms.CompleteTutorial)
			room.POST("/words", deps.Limiter.Middleware(), deps.Rooms.SubmitWord)
			room.POST("/shuffle", deps.Limiter.Middleware(), deps.Rooms.VoteShuffle)
			room.GET("/state", deps.Rooms.PollState)
			room.POST("/play-again", deps.Rooms.PlayAgain)
			room.GET("/rounds", deps.Rooms.RoundHistory)
		}
	}
}

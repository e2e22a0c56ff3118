package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusroom/internal/handler"
	"focusroom/internal/middleware"
	"focusroom/internal/service"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Room    *handler.RoomHandler
	Stats   *handler.StatsHandler
	Social  *handler.SocialHandler
}

func New(authService *service.AuthService, h Handlers, corsOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	profile := api.Group("/profile")
	profile.Use(middleware.Auth(authService))
	profile.GET("", h.Profile.Get)
	profile.PUT("/coins", h.Profile.UpdateCoins)
	profile.PUT("/public", h.Profile.SetRoomPublic)

	room := api.Group("/room")
	room.Use(middleware.Auth(authService))
	room.GET("", h.Room.Get)
	room.PUT("", h.Room.Upsert)

	sessions := api.Group("/sessions")
	sessions.Use(middleware.Auth(authService))
	sessions.POST("", h.Stats.RecordSession)
	sessions.GET("", h.Stats.ListSessions)

	stats := api.Group("/stats")
	stats.Use(middleware.Auth(authService))
	stats.GET("/daily/:day", h.Stats.GetDaily)
	stats.PUT("/daily/:day", h.Stats.UpsertDaily)

	social := api.Group("/social")
	social.GET("/leaderboard", h.Social.Leaderboard)
	social.GET("/rooms", middleware.OptionalAuth(authService), h.Social.PublicRooms)
	social.POST("/rooms/:ownerID/like", middleware.Auth(authService), h.Social.ToggleLike)

	return engine
}

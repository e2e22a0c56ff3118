package main

import (
	"log"

	"focusroom/internal/config"
	"focusroom/internal/handler"
	"focusroom/internal/repository"
	"focusroom/internal/router"
	"focusroom/internal/service"
	"focusroom/internal/store"
)

func main() {
	cfg := config.LoadServer()

	database, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := store.RunMigrations(database, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	roomRepo := repository.NewRoomRepository(database)
	statsRepo := repository.NewStatsRepository(database)
	sessionRepo := repository.NewSessionRepository(database)
	likeRepo := repository.NewLikeRepository(database)

	authService := service.NewAuthService(userRepo, profileRepo, cfg.JWTSecret, cfg.TokenTTL)
	profileService := service.NewProfileService(profileRepo)
	roomService := service.NewRoomService(roomRepo)
	statsService := service.NewStatsService(profileRepo, statsRepo, sessionRepo)
	socialService := service.NewSocialService(profileRepo, roomRepo, likeRepo)

	engine := router.New(authService, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Profile: handler.NewProfileHandler(profileService),
		Room:    handler.NewRoomHandler(roomService),
		Stats:   handler.NewStatsHandler(statsService),
		Social:  handler.NewSocialHandler(socialService),
	}, cfg.CORSOrigins)

	log.Printf("focusroom api listening on :%s", cfg.Port)
	if err := engine.Run(":" + cfg.Port); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

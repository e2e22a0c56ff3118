package main

import (
	"log"

	"focusroom/internal/config"
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

	log.Println("migrations applied successfully")
}

package main

import (
	"fmt"
	"log"

	"github.com/Kaidothouse/expense-tracker/internal/config"
	"github.com/Kaidothouse/expense-tracker/internal/database"
	"github.com/Kaidothouse/expense-tracker/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// .env overrides are optional
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	r := router.Setup(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

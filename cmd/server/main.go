package main

import (
	"log"
	"os"
	"time"

	"dispute-reconciliation-backend/internal/config"
	"dispute-reconciliation-backend/internal/models"
	"dispute-reconciliation-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	db := config.InitDB()
	if err := db.AutoMigrate(
		&models.DisputeCase{},
		&models.BankTransaction{},
		&models.PaymentRecord{},
		&models.MatchSuggestion{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	uiOrigin := os.Getenv("UI_ORIGIN")
	if uiOrigin == "" {
		uiOrigin = "http://localhost:3000"
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{uiOrigin},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db)

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

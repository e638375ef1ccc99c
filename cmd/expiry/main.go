package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"cinebook/internal/bookings"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
)

// One-shot booking expiry sweep for cron or operator use. The server
// runs the same sweep on a ticker; this command exists for environments
// where the background job is disabled.
func main() {
	dryRun := flag.Bool("dry-run", false, "report how many bookings would expire without updating them")
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo := bookings.NewRepository(db.PostgreSQL)
	service := bookings.NewService(repo)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()

	if *dryRun {
		count, err := service.CountDue(ctx, now)
		if err != nil {
			log.Fatalf("Failed to count due bookings: %v", err)
		}
		fmt.Printf("Would expire %d booking(s)\n", count)
		return
	}

	count, err := service.ExpireDue(ctx, now)
	if err != nil {
		log.Fatalf("Failed to expire bookings: %v", err)
	}
	fmt.Printf("Expired %d booking(s)\n", count)
}

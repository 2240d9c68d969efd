// Command seed populates the database with demo users and follows.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"devfolio_backend/internal/app/config"
	"devfolio_backend/internal/app/seed"
	"devfolio_backend/internal/platform/db"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	maxFollows := flag.Int("follows", 5, "Maximum number of users each user follows")
	shouldClean := flag.Bool("clean", false, "Delete all users and follows before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dbCfg := cfg.DB()
	dbCfg.RunMigrations = true
	gdb, err := db.Open(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	s := seed.NewSeeder(gdb, seed.Options{Users: *numUsers, MaxFollows: *maxFollows, Seed: time.Now().UnixNano()})
	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.Run(ctx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("seed ok: %d users (password: %s)", len(users), seed.DemoPassword)
}

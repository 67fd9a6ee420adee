// Command seed populates the development database with demo data.
package main

import (
	"flag"
	"log"

	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of demo users to create")
	postsPerUser := flag.Int("posts", 3, "number of posts per user")
	maxDays := flag.Int("max-days", 90, "spread post timestamps over this many days")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		Users:        *users,
		PostsPerUser: *postsPerUser,
		MaxDays:      *maxDays,
	}); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
}

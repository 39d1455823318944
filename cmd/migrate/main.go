// Command main applies the database schema migrations for Reunion. Use it in
// production where the server does not auto-migrate on startup.
package main

import (
	"log"

	"reunion/internal/config"
	"reunion/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("✓ Migration completed successfully")
}

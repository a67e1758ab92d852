package main

import (
	"flag"
	"log"

	"webmatematica/config"
	"webmatematica/database"
	"webmatematica/seed"
)

func main() {
	path := flag.String("file", "scripts/seed.yaml", "YAML file describing the courses to import")
	flag.Parse()

	// Load config and connect to database
	cfg := config.LoadConfig()
	db, err := database.ConnectDb(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	admin, err := seed.EnsureAdmin(db, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword, cfg.SaltRound)
	if err != nil {
		log.Fatalf("Failed to set up the admin account: %v", err)
	}

	file, err := seed.Load(*path)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}
	log.Printf("Total courses to import: %d", len(file.Courses))

	stats, err := seed.Apply(db, file, admin.ID)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import completed. Courses: %d, skipped: %d, sections: %d, resources: %d, activities: %d",
		stats.Courses, stats.Skipped, stats.Sections, stats.Resources, stats.Activities)
}

package main

import (
	"database/sql"
	"log"
	"os"
	"strings"
	"tour-route-service/internal/adapters/repositories"
	"tour-route-service/internal/config"
	"tour-route-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	placesPath := config.Get("SEED_PLACES_PATH", "data/seeds/places.json")
	roadsPath := config.Get("SEED_ROADS_PATH", "data/seeds/roads.geojson")
	if err := initAndSeed(database, placesPath, roadsPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(database *sql.DB, placesPath, roadsPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(database); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding places...")
	if err := repositories.SeedPlacesFromJSON(database, placesPath); err != nil {
		log.Fatalf("seeding places failed: %v", err)
	}

	log.Println("Seeding road network...")
	if err := repositories.SeedRoadsFromGeoJSON(database, roadsPath); err != nil {
		log.Fatalf("seeding roads failed: %v", err)
	}
	log.Println("Seeding complete.")

	return nil
}

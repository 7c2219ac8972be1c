package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Indian GST slabs with keyword lists tuned for the detection heuristic.
var slabs = []struct {
	Name     string
	Rate     float64
	Keywords []string
	Active   bool
}{
	{"Essential Goods", 0, []string{"milk", "bread", "vegetables", "fruits", "grain", "salt"}, true},
	{"Household Staples", 5, []string{"sugar", "tea", "coffee", "edible oil", "spices", "footwear"}, true},
	{"Processed Foods", 12, []string{"butter", "cheese", "ghee", "dry fruits", "namkeen", "umbrella"}, true},
	{"Standard Goods", 18, []string{"laptop", "phone", "camera", "printer", "soap", "toothpaste", "software"}, true},
	{"Luxury Goods", 28, []string{"car", "motorcycle", "cigarette", "aerated drink", "yacht", "perfume"}, true},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	log.Println("Seeding GST categories...")
	for _, slab := range slabs {
		_, err := pool.Exec(ctx, `
			INSERT INTO gst_categories (id, name, rate, keywords, active)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING;
		`, categoryID(slab.Name), slab.Name, slab.Rate, slab.Keywords, slab.Active)
		if err != nil {
			log.Printf("Failed to seed category %s: %v", slab.Name, err)
		}
	}

	log.Println("Seeding completed successfully!")
}

// categoryID derives a stable identifier from the category name so reruns
// upsert instead of duplicating rows.
func categoryID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("gst_categories/"+name))
}

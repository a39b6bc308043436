package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sidnetopia/airbnb-scraper/config"
	"github.com/sidnetopia/airbnb-scraper/models"
	"github.com/sidnetopia/airbnb-scraper/services"
	"github.com/sidnetopia/airbnb-scraper/storage"
	"github.com/sidnetopia/airbnb-scraper/utils"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("✗ Failed to load config: %v", err)
	}

	cityNames := make([]string, len(cfg.Cities))
	for i, c := range cfg.Cities {
		cityNames[i] = c.Name
	}

	log.Printf("╔═══════════════════════════════════════════════════╗")
	log.Printf("║     Arkansas Rental Listings Crawler (Airbnb)     ║")
	log.Printf("╚═══════════════════════════════════════════════════╝")
	log.Printf("Cities   : %s", strings.Join(cityNames, ", "))
	log.Printf("Workers  : %d (cities processed concurrently)", cfg.Workers)
	log.Printf("Cap      : %d listings per city", cfg.MaxPerCity)
	log.Printf("Output   : %s, %s", cfg.CSVFile, cfg.JSONLFile)

	rootCtx, cancelRoot := context.WithTimeout(context.Background(), cfg.GlobalTimeout)
	defer cancelRoot()

	results := services.RunAll(rootCtx, cfg)

	all := make([]models.Listing, 0)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		all = append(all, r.Listings...)
	}

	if err := storage.NewCSVWriter(cfg.CSVFile).WriteListings(all); err != nil {
		log.Fatalf("✗ Failed to write CSV: %v", err)
	}

	total, err := storage.NewJSONLWriter(cfg.JSONLFile).WriteListings(all)
	if err != nil {
		log.Fatalf("✗ Failed to write JSONL: %v", err)
	}

	sinkCtx, cancelSinks := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelSinks()

	if cfg.MongoURI != "" {
		mongoWriter, err := storage.NewMongoWriter(sinkCtx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatalf("✗ Failed to connect to MongoDB: %v", err)
		}
		inserted, err := mongoWriter.InsertListings(sinkCtx, all)
		if err != nil {
			log.Fatalf("✗ Failed to store listings in MongoDB: %v", err)
		}
		_ = mongoWriter.Close(sinkCtx)
		log.Printf("  Mongo — %d listings inserted → %s collection", inserted, cfg.MongoDB)
	}

	if cfg.DBHost != "" {
		store, err := storage.NewPostgresStore(cfg)
		if err != nil {
			log.Fatalf("✗ Failed to connect to PostgreSQL: %v", err)
		}
		defer store.Close()

		savedCount, err := store.SaveListings(sinkCtx, all)
		if err != nil {
			log.Fatalf("✗ Failed to store listings in PostgreSQL: %v", err)
		}
		log.Printf("  DB   — %d listings upserted → listings table", savedCount)
	}

	log.Printf("═══════════════════════════════════════════════════")
	log.Printf("  DONE — %d total listings → %s", total, cfg.JSONLFile)
	for _, r := range results {
		status := fmt.Sprintf("%d listings", len(r.Listings))
		if r.Err != nil {
			status = "ERROR: " + r.Err.Error()
		}
		log.Printf("    %-14s %s", r.City+":", status)
	}

	stats := utils.BuildSummaryStats(results)
	log.Printf("  STATS")
	log.Printf("    Total Listings Scraped : %d", stats.TotalListings)
	log.Printf("    Listings With Ratings  : %d", stats.RatedListings)
	log.Printf("    Average Price          : %.2f", stats.AveragePrice)
	log.Printf("    Minimum Price          : %.2f", stats.MinimumPrice)
	log.Printf("    Maximum Price          : %.2f", stats.MaximumPrice)
	if stats.TotalListings > 0 {
		log.Printf("    Most Expensive Property: %s | $%.2f",
			stats.MostExpensiveProperty.Name,
			stats.MostExpensiveProperty.TotalPrice,
		)
	}

	log.Printf("    Listings per City")
	for _, cityStat := range stats.ListingsPerCity {
		log.Printf("      - %s: %d", cityStat.City, cityStat.Count)
	}

	log.Printf("    Top 5 Highest Rated Properties")
	for i, property := range stats.TopRatedProperties {
		log.Printf("      %d) %.2f★ | %s",
			i+1,
			*property.Rating.Overall,
			property.Name,
		)
	}
	log.Printf("═══════════════════════════════════════════════════")
}

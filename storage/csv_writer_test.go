package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/sidnetopia/airbnb-scraper/models"
)

func TestCSVWriterFlattensRatings(t *testing.T) {
	overall := 4.85
	reviews := 120

	listings := []models.Listing{
		{
			ID:         101,
			Name:       "Cozy cabin",
			City:       "Springdale",
			State:      "Arkansas",
			Country:    "United States",
			TotalPrice: 85,
			AmenityIDs: []int{1, 4, 8},
			Rating:     models.Rating{Overall: &overall, ReviewCount: &reviews},
		},
		{
			ID:      102,
			Name:    "Unrated loft",
			City:    "Springdale",
			State:   "Arkansas",
			Country: "United States",
		},
	}

	path := filepath.Join(t.TempDir(), "listing.csv")
	if err := NewCSVWriter(path).WriteListings(listings); err != nil {
		t.Fatalf("WriteListings: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 records", len(rows))
	}

	header := rows[0]
	col := map[string]int{}
	for i, key := range header {
		col[key] = i
	}

	for _, key := range []string{"id", "rating_overall", "rating_review_count", "rating_cleanliness"} {
		if _, ok := col[key]; !ok {
			t.Fatalf("header missing flattened key %q: %v", key, header)
		}
	}

	if rows[1][col["rating_overall"]] != "4.85" || rows[1][col["rating_review_count"]] != "120" {
		t.Errorf("rated row = %v", rows[1])
	}
	if rows[2][col["rating_overall"]] != "" {
		t.Errorf("absent rating must serialize empty, got %q", rows[2][col["rating_overall"]])
	}
	if rows[1][col["amenities"]] != "1;4;8" {
		t.Errorf("amenities = %q", rows[1][col["amenities"]])
	}
}

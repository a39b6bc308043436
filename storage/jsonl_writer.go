package storage

import (
	"encoding/json"
	"os"

	"github.com/sidnetopia/airbnb-scraper/models"
)

// JSONLWriter emits one JSON document per line. Absent rating fields
// serialize as explicit nulls.
type JSONLWriter struct {
	filename string
}

func NewJSONLWriter(filename string) *JSONLWriter {
	return &JSONLWriter{filename: filename}
}

// WriteListings writes every listing and returns the number written.
func (w *JSONLWriter) WriteListings(listings []models.Listing) (int, error) {
	f, err := os.Create(w.filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, listing := range listings {
		if err := enc.Encode(listing); err != nil {
			return 0, err
		}
	}

	return len(listings), nil
}

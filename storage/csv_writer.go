package storage

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/sidnetopia/airbnb-scraper/models"
)

// CSVWriter emits one flattened row per listing. Nested rating fields are
// joined into the top-level key space with an underscore (rating_overall,
// rating_cleanliness, ...). The header is taken from the first record and
// written once.
type CSVWriter struct {
	filename string
}

func NewCSVWriter(filename string) *CSVWriter {
	return &CSVWriter{filename: filename}
}

func (w *CSVWriter) WriteListings(listings []models.Listing) error {
	file, err := os.Create(w.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	wroteHeader := false
	for _, listing := range listings {
		keys, values := flattenListing(listing)
		if !wroteHeader {
			if err := writer.Write(keys); err != nil {
				return err
			}
			wroteHeader = true
		}
		if err := writer.Write(values); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func flattenListing(l models.Listing) (keys, values []string) {
	add := func(key, value string) {
		keys = append(keys, key)
		values = append(values, value)
	}

	add("id", strconv.FormatInt(l.ID, 10))
	add("name", l.Name)
	add("city", l.City)
	add("state", l.State)
	add("country", l.Country)
	add("num_bedroom", strconv.Itoa(l.NumBedroom))
	add("num_bathroom", strconv.Itoa(l.NumBathroom))
	add("num_bed", strconv.Itoa(l.NumBed))
	add("total_accomodation", strconv.FormatFloat(l.TotalPrice, 'f', -1, 64))
	add("host_name", l.HostName)
	add("host_id", strconv.FormatInt(l.HostID, 10))
	add("latitude", strconv.FormatFloat(l.Latitude, 'f', -1, 64))
	add("longitude", strconv.FormatFloat(l.Longitude, 'f', -1, 64))
	add("room_type", l.RoomType)
	add("picture_url", l.PictureURL)
	add("amenities", joinAmenities(l.AmenityIDs))
	add("rating_overall", formatFloatPtr(l.Rating.Overall))
	add("rating_review_count", formatIntPtr(l.Rating.ReviewCount))
	add("rating_cleanliness", formatFloatPtr(l.Rating.Cleanliness))
	add("rating_check_in", formatFloatPtr(l.Rating.CheckIn))
	add("rating_accuracy", formatFloatPtr(l.Rating.Accuracy))
	add("rating_communication", formatFloatPtr(l.Rating.Communication))
	add("rating_location", formatFloatPtr(l.Rating.Location))
	add("rating_value", formatFloatPtr(l.Rating.Value))

	return keys, values
}

func joinAmenities(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ";")
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

package scraper

import (
	"testing"

	"github.com/sidnetopia/airbnb-scraper/models"
)

func TestParseOverallRating(t *testing.T) {
	var r models.Rating
	ok := parseOverallRating("4.85 out of 5 average rating, from 120 reviews", &r)
	if !ok {
		t.Fatal("expected heading to match")
	}
	if r.Overall == nil || *r.Overall != 4.85 {
		t.Errorf("overall = %v, want 4.85", r.Overall)
	}
	if r.ReviewCount == nil || *r.ReviewCount != 120 {
		t.Errorf("review count = %v, want 120", r.ReviewCount)
	}
}

func TestParseOverallRatingBothOrNothing(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"empty heading", ""},
		{"score without count", "4.85 out of 5 average rating"},
		{"count without score", "from 120 reviews"},
		{"unrelated text", "New listing"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r models.Rating
			if parseOverallRating(tc.text, &r) {
				t.Fatal("expected no match")
			}
			if r.Overall != nil || r.ReviewCount != nil {
				t.Errorf("partial match populated fields: %+v", r)
			}
		})
	}
}

func TestApplyCategoryRating(t *testing.T) {
	var r models.Rating
	applyCategoryRating(&r, "Cleanliness4.9")
	applyCategoryRating(&r, "Location4.2")
	applyCategoryRating(&r, "Foo3.0")
	applyCategoryRating(&r, "no trailing number")

	if r.Cleanliness == nil || *r.Cleanliness != 4.9 {
		t.Errorf("cleanliness = %v, want 4.9", r.Cleanliness)
	}
	if r.Location == nil || *r.Location != 4.2 {
		t.Errorf("location = %v, want 4.2", r.Location)
	}
	if r.CheckIn != nil || r.Accuracy != nil || r.Communication != nil || r.Value != nil {
		t.Errorf("unexpected sub-scores populated: %+v", r)
	}
}

func TestApplyCategoryRatingAllCategories(t *testing.T) {
	var r models.Rating
	applyCategoryRating(&r, "Cleanliness4.9")
	applyCategoryRating(&r, "Communication4.8")
	applyCategoryRating(&r, "Check-in4.7")
	applyCategoryRating(&r, "Accuracy4.6")
	applyCategoryRating(&r, "Location4.5")
	applyCategoryRating(&r, "Value4.4")

	for name, got := range map[string]*float64{
		"cleanliness":   r.Cleanliness,
		"communication": r.Communication,
		"check_in":      r.CheckIn,
		"accuracy":      r.Accuracy,
		"location":      r.Location,
		"value":         r.Value,
	} {
		if got == nil {
			t.Errorf("%s not populated", name)
		}
	}
}

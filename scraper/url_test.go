package scraper

import (
	"net/url"
	"strings"
	"testing"

	"github.com/sidnetopia/airbnb-scraper/config"
)

var springdale = config.CityConfig{
	Name:            "Springdale",
	StateCode:       "AR",
	Country:         "United States",
	NormalizedState: "Arkansas",
}

func TestBuildSearchURLFixedParams(t *testing.T) {
	raw := BuildSearchURL("https://www.airbnb.com/api/v2/explore_tabs", "test-key", springdale, nil)

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse built url: %v", err)
	}
	q := u.Query()

	want := map[string]string{
		"key":             "test-key",
		"selected_tab_id": "home_tab",
		"items_per_grid":  "50",
		"max_total_count": "5000",
		"query":           "Springdale--AR--United-States",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("param %s = %q, want %q", k, got, v)
		}
	}
}

func TestBuildSearchURLAppendsPaginationParams(t *testing.T) {
	extra := url.Values{}
	extra.Set("items_offset", "50")
	extra.Set("section_offset", "4")

	raw := BuildSearchURL("https://www.airbnb.com/api/v2/explore_tabs", "test-key", springdale, extra)

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse built url: %v", err)
	}
	q := u.Query()
	if q.Get("items_offset") != "50" || q.Get("section_offset") != "4" {
		t.Fatalf("pagination params missing from %s", raw)
	}

	// Extras come after the fixed parameters.
	if strings.Index(raw, "items_offset") < strings.Index(raw, "selected_tab_id") {
		t.Errorf("pagination params not appended last: %s", raw)
	}
}

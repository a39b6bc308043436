package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const samplePayload = `{
	"explore_tabs": [
		{
			"sections": [
				{"title": "header section"},
				{
					"listings": [
						{
							"listing": {
								"id": 101,
								"name": "Cozy cabin",
								"public_address": "Springdale, AR, United States",
								"city": "Springdale",
								"bedrooms": 2.0,
								"bathrooms": 1.0,
								"beds": 3.0,
								"lat": 36.18,
								"lng": -94.12,
								"room_type": "Entire home/apt",
								"picture_url": "https://img.example/101.jpg",
								"amenity_ids": [1, 4, 8],
								"user": {"id": 77, "first_name": "Dana"}
							},
							"pricing_quote": {
								"structured_stay_display_price": {
									"primary_line": {"price": "$85 night"}
								}
							}
						}
					]
				}
			],
			"pagination_metadata": {
				"has_next_page": true,
				"items_offset": 50,
				"section_offset": 4
			}
		}
	]
}`

func TestFetchPageParsesLastSection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	page, err := NewSearchClient().FetchPage(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}

	if len(page.Listings) != 1 {
		t.Fatalf("got %d listings, want 1", len(page.Listings))
	}
	info := page.Listings[0].Listing
	if info.ID != 101 || info.PublicAddress != "Springdale, AR, United States" {
		t.Errorf("unexpected listing info: %+v", info)
	}
	if info.User.FirstName != "Dana" || info.User.ID != 77 {
		t.Errorf("unexpected host info: %+v", info.User)
	}
	if got := page.Listings[0].PricingQuote.StructuredStayDisplayPrice.PrimaryLine.Price; got != "$85 night" {
		t.Errorf("price = %q", got)
	}

	if !page.HasNextPage || page.ItemsOffset != 50 || page.SectionOffset != 4 {
		t.Errorf("unexpected pagination metadata: %+v", page)
	}
}

func TestFetchPageMalformedShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"no sections", `{"explore_tabs": [{}]}`},
		{"last section without listings", `{"explore_tabs": [{"sections": [{}], "pagination_metadata": {"has_next_page": false}}]}`},
		{"no pagination metadata", `{"explore_tabs": [{"sections": [{"listings": []}]}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewSearchClient().FetchPage(context.Background(), srv.URL)
			if !errors.Is(err, ErrUnexpectedShape) {
				t.Fatalf("err = %v, want ErrUnexpectedShape", err)
			}
		})
	}
}

func TestFetchPageHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewSearchClient().FetchPage(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error on 404 response")
	}
}

package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrUnexpectedShape reports a search payload that is missing one of the keys
// the pagination loop depends on. It aborts the affected city's stream.
var ErrUnexpectedShape = errors.New("unexpected search payload shape")

type exploreResponse struct {
	ExploreTabs []exploreTab `json:"explore_tabs"`
}

type exploreTab struct {
	Sections           []exploreSection    `json:"sections"`
	PaginationMetadata *paginationMetadata `json:"pagination_metadata"`
}

type exploreSection struct {
	Listings []RawListing `json:"listings"`
}

type paginationMetadata struct {
	HasNextPage   bool `json:"has_next_page"`
	ItemsOffset   int  `json:"items_offset"`
	SectionOffset int  `json:"section_offset"`
}

// RawListing is one entry of the search results, before filtering.
type RawListing struct {
	Listing      ListingInfo  `json:"listing"`
	PricingQuote PricingQuote `json:"pricing_quote"`
}

// ListingInfo mirrors the listing object of the search payload. Bedroom and
// bathroom counts arrive as floats on the wire.
type ListingInfo struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	PublicAddress string   `json:"public_address"`
	City          string   `json:"city"`
	Bedrooms      float64  `json:"bedrooms"`
	Bathrooms     float64  `json:"bathrooms"`
	Beds          float64  `json:"beds"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	RoomType      string   `json:"room_type"`
	PictureURL    string   `json:"picture_url"`
	AmenityIDs    []int    `json:"amenity_ids"`
	User          HostInfo `json:"user"`
}

type HostInfo struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
}

type PricingQuote struct {
	StructuredStayDisplayPrice struct {
		PrimaryLine struct {
			Price string `json:"price"`
		} `json:"primary_line"`
	} `json:"structured_stay_display_price"`
}

// SearchPage is the slice of the payload the pagination loop consumes: the
// listings of the last section of tab 0, plus the pagination metadata.
type SearchPage struct {
	Listings      []RawListing
	HasNextPage   bool
	ItemsOffset   int
	SectionOffset int
}

// SearchClient fetches search-API pages over HTTP with bounded retries.
type SearchClient struct {
	http *retryablehttp.Client
}

func NewSearchClient() *SearchClient {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.RetryMax = 3
	rc.Logger = nil
	rc.HTTPClient.Timeout = 15 * time.Second

	return &SearchClient{http: rc}
}

// FetchPage issues one search request and validates the payload shape.
func (c *SearchClient) FetchPage(ctx context.Context, pageURL string) (*SearchPage, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch search page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("search API status %d", resp.StatusCode)
	}

	var payload exploreResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search payload: %w", err)
	}

	return payload.page()
}

// page navigates the payload to the listings array and pagination metadata,
// turning any missing key into ErrUnexpectedShape.
func (r *exploreResponse) page() (*SearchPage, error) {
	if len(r.ExploreTabs) == 0 {
		return nil, fmt.Errorf("%w: missing explore_tabs", ErrUnexpectedShape)
	}
	tab := r.ExploreTabs[0]

	if len(tab.Sections) == 0 {
		return nil, fmt.Errorf("%w: missing sections", ErrUnexpectedShape)
	}
	last := tab.Sections[len(tab.Sections)-1]
	if last.Listings == nil {
		return nil, fmt.Errorf("%w: last section has no listings", ErrUnexpectedShape)
	}

	if tab.PaginationMetadata == nil {
		return nil, fmt.Errorf("%w: missing pagination_metadata", ErrUnexpectedShape)
	}

	return &SearchPage{
		Listings:      last.Listings,
		HasNextPage:   tab.PaginationMetadata.HasNextPage,
		ItemsOffset:   tab.PaginationMetadata.ItemsOffset,
		SectionOffset: tab.PaginationMetadata.SectionOffset,
	}, nil
}

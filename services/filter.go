package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sidnetopia/airbnb-scraper/config"
	"github.com/sidnetopia/airbnb-scraper/models"
	"github.com/sidnetopia/airbnb-scraper/scraper"
)

// ErrMalformedAddress reports a public_address that does not split into the
// expected "city, state, country" form. It aborts the city's stream.
var ErrMalformedAddress = errors.New("malformed public address")

var priceDigitsRe = regexp.MustCompile(`\d+`)

// Filter validates raw search entries against one target city and normalizes
// the accepted ones. It owns the city's acceptance counter; Accept is the
// only place the counter is incremented.
type Filter struct {
	target   config.CityConfig
	accepted int
}

func NewFilter(target config.CityConfig) *Filter {
	return &Filter{target: target}
}

// Accepted reports how many listings have been accepted so far.
func (f *Filter) Accepted() int {
	return f.accepted
}

// Accept returns the normalized listing when raw belongs to the target city,
// nil when it belongs elsewhere, and ErrMalformedAddress when the address
// cannot be parsed. Rejections leave the counter untouched.
func (f *Filter) Accept(raw scraper.RawListing) (*models.Listing, error) {
	parts := strings.Split(raw.Listing.PublicAddress, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedAddress, raw.Listing.PublicAddress)
	}
	city := strings.TrimSpace(parts[0])
	state := strings.TrimSpace(parts[1])
	country := strings.TrimSpace(parts[2])

	if city != f.target.Name || state != f.target.StateCode || country != f.target.Country {
		return nil, nil
	}

	f.accepted++

	return &models.Listing{
		ID:   raw.Listing.ID,
		Name: raw.Listing.Name,
		City: raw.Listing.City,
		// The long-form state name replaces the parsed abbreviation
		// unconditionally.
		State:       f.target.NormalizedState,
		Country:     country,
		NumBedroom:  int(raw.Listing.Bedrooms),
		NumBathroom: int(raw.Listing.Bathrooms),
		NumBed:      int(raw.Listing.Beds),
		TotalPrice:  extractPrice(raw.PricingQuote.StructuredStayDisplayPrice.PrimaryLine.Price),
		HostName:    raw.Listing.User.FirstName,
		HostID:      raw.Listing.User.ID,
		Latitude:    raw.Listing.Lat,
		Longitude:   raw.Listing.Lng,
		RoomType:    raw.Listing.RoomType,
		PictureURL:  raw.Listing.PictureURL,
		AmenityIDs:  raw.Listing.AmenityIDs,
	}, nil
}

// extractPrice pulls the first run of digits out of a display price such as
// "$1,234 night". Thousands separators are stripped first; no digits means 0.
func extractPrice(display string) float64 {
	display = strings.ReplaceAll(display, ",", "")
	digits := priceDigitsRe.FindString(display)
	if digits == "" {
		return 0
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return v
}

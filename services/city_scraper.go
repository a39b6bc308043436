package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"sync"

	"github.com/sidnetopia/airbnb-scraper/config"
	"github.com/sidnetopia/airbnb-scraper/models"
	"github.com/sidnetopia/airbnb-scraper/scraper"
)

// SearchFetcher retrieves one search-API page.
type SearchFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (*scraper.SearchPage, error)
}

// RatingFetcher retrieves rating data for one listing. Implementations never
// fail; whatever could not be read comes back as absent fields.
type RatingFetcher interface {
	FetchRating(ctx context.Context, listingID int64) models.Rating
}

// CityScraper drives one city's crawl: paginate the search API, filter each
// entry, and enrich every accepted listing with its detail-page rating.
type CityScraper struct {
	search  SearchFetcher
	ratings RatingFetcher
	cfg     config.Config
}

func NewCityScraper(search SearchFetcher, ratings RatingFetcher, cfg config.Config) *CityScraper {
	return &CityScraper{search: search, ratings: ratings, cfg: cfg}
}

// ScrapeCity runs the pagination loop for one city until the API reports no
// further pages or the acceptance cap is reached. Listings come back in
// acceptance order, each with its rating attempt completed. A malformed
// payload or address aborts the city with an error; other cities are
// unaffected.
func (cs *CityScraper) ScrapeCity(ctx context.Context, city config.CityConfig) ([]models.Listing, error) {
	filter := NewFilter(city)

	var accepted []*models.Listing
	var wg sync.WaitGroup
	sem := make(chan struct{}, cs.cfg.DetailConcurrent)

	pageURL := scraper.BuildSearchURL(cs.cfg.SearchBase, cs.cfg.APIKey, city, nil)
	for pageNum := 1; ; pageNum++ {
		log.Printf("[%s] search page %d (accepted so far: %d)", city.Name, pageNum, filter.Accepted())

		page, err := cs.search.FetchPage(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNum, err)
		}

		for i := range page.Listings {
			if filter.Accepted() >= cs.cfg.MaxPerCity {
				// Remaining entries on this page are discarded, not buffered.
				break
			}

			listing, err := filter.Accept(page.Listings[i])
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", pageNum, err)
			}
			if listing == nil {
				continue
			}
			accepted = append(accepted, listing)

			// Accept already bumped the counter, so the cap check stays
			// consistent while these fetches are in flight.
			wg.Add(1)
			go func(l *models.Listing) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				l.Rating = cs.ratings.FetchRating(ctx, l.ID)
			}(listing)
		}

		if filter.Accepted() >= cs.cfg.MaxPerCity {
			log.Printf("[%s] cap of %d reached, stopping", city.Name, cs.cfg.MaxPerCity)
			break
		}
		if !page.HasNextPage {
			break
		}

		extra := url.Values{}
		extra.Set("items_offset", strconv.Itoa(page.ItemsOffset))
		extra.Set("section_offset", strconv.Itoa(page.SectionOffset))
		pageURL = scraper.BuildSearchURL(cs.cfg.SearchBase, cs.cfg.APIKey, city, extra)
	}

	wg.Wait()

	listings := make([]models.Listing, len(accepted))
	for i, l := range accepted {
		listings[i] = *l
	}
	return listings, nil
}

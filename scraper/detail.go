package scraper

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/sidnetopia/airbnb-scraper/models"
)

// DetailFetcher scrapes rating data from listing detail pages. Ratings render
// client-side, so every fetch runs the page scripts in its own browser tab.
type DetailFetcher struct {
	base    string
	timeout time.Duration
}

func NewDetailFetcher(base string, timeout time.Duration) *DetailFetcher {
	return &DetailFetcher{base: base, timeout: timeout}
}

// FetchRating opens the listing's detail page and returns whatever rating
// data it can read. It never fails: an error mid-scrape keeps the fields
// collected up to that point and leaves the rest absent. The tab is closed
// before returning on every path.
func (d *DetailFetcher) FetchRating(ctx context.Context, listingID int64) models.Rating {
	var rating models.Rating

	tabCtx, cancelTab := chromedp.NewContext(ctx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, d.timeout)
	defer cancelTimeout()

	pageURL := fmt.Sprintf("%s/%d", d.base, listingID)

	var headingText string
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(2*time.Second),
		chromedp.Evaluate(
			fmt.Sprintf(`document.querySelector(%q)?.innerText || ''`, OverallRatingSelector),
			&headingText,
		),
	); err != nil {
		return rating
	}

	if !parseOverallRating(headingText, &rating) {
		return rating
	}

	var categoryTexts []string
	if err := chromedp.Run(tabCtx,
		chromedp.Evaluate(
			fmt.Sprintf(`Array.from(document.querySelectorAll(%q)).map(el => el.textContent || '')`, CategoryRatingSelector),
			&categoryTexts,
		),
	); err != nil {
		return rating
	}

	for _, text := range categoryTexts {
		applyCategoryRating(&rating, text)
	}

	return rating
}

// parseOverallRating matches the heading text against the overall-score and
// review-count patterns. Both must match for anything to be stored; a partial
// match leaves the rating untouched.
func parseOverallRating(text string, r *models.Rating) bool {
	scoreMatch := overallScoreRe.FindStringSubmatch(text)
	countMatch := reviewCountRe.FindStringSubmatch(text)
	if scoreMatch == nil || countMatch == nil {
		return false
	}

	score, err := strconv.ParseFloat(scoreMatch[1], 64)
	if err != nil {
		return false
	}
	count, err := strconv.Atoi(countMatch[1])
	if err != nil {
		return false
	}

	r.Overall = &score
	r.ReviewCount = &count
	return true
}

// applyCategoryRating parses one category element's text ("Cleanliness4.9")
// and stores the value under its canonical field. Unknown labels are dropped.
func applyCategoryRating(r *models.Rating, text string) {
	m := categoryRe.FindStringSubmatch(text)
	if m == nil {
		return
	}

	key, ok := categoryKeys[strings.TrimSpace(m[1])]
	if !ok {
		return
	}
	value, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return
	}

	switch key {
	case "cleanliness":
		r.Cleanliness = &value
	case "communication":
		r.Communication = &value
	case "check_in":
		r.CheckIn = &value
	case "accuracy":
		r.Accuracy = &value
	case "location":
		r.Location = &value
	case "value":
		r.Value = &value
	}
}

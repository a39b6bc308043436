package scraper

import "regexp"

// CSS selectors and text patterns used on listing detail pages.
// Centralising them makes future updates trivial.
const (
	// Aggregate rating heading, e.g. "4.85 out of 5 average rating, from 120 reviews"
	OverallRatingSelector = `h2 .a8jt5op.dir.dir-ltr`

	// One element per rating category, e.g. "Cleanliness4.9"
	CategoryRatingSelector = `div._1s11ltsf`
)

var (
	overallScoreRe = regexp.MustCompile(`([\d.]+)\sout`)
	reviewCountRe  = regexp.MustCompile(`from\s(\d+)`)
	categoryRe     = regexp.MustCompile(`^([^\d]+)([\d.]+)`)
)

// categoryKeys maps a rendered category label to its canonical rating field.
// Labels missing from the table are dropped.
var categoryKeys = map[string]string{
	"Cleanliness":   "cleanliness",
	"Communication": "communication",
	"Check-in":      "check_in",
	"Accuracy":      "accuracy",
	"Location":      "location",
	"Value":         "value",
}

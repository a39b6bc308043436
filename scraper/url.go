package scraper

import (
	"net/url"
	"strings"

	"github.com/sidnetopia/airbnb-scraper/config"
)

// BuildSearchURL constructs the explore-tabs request for a city. The query
// parameter has the form "<city>--<stateCode>--<country>" with spaces in the
// country replaced by dashes. Pagination parameters, when present, are
// appended after the fixed ones.
func BuildSearchURL(base, apiKey string, city config.CityConfig, extra url.Values) string {
	params := url.Values{}
	params.Set("key", apiKey)
	params.Set("selected_tab_id", "home_tab")
	params.Set("items_per_grid", "50")
	params.Set("max_total_count", "5000")
	params.Set("query", city.Name+"--"+city.StateCode+"--"+strings.ReplaceAll(city.Country, " ", "-"))

	u := base + "?" + params.Encode()
	if len(extra) > 0 {
		u += "&" + extra.Encode()
	}
	return u
}

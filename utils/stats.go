package utils

import (
	"sort"
	"strings"

	"github.com/sidnetopia/airbnb-scraper/models"
)

type CityCount struct {
	City  string
	Count int
}

type SummaryStats struct {
	TotalListings         int
	AveragePrice          float64
	MinimumPrice          float64
	MaximumPrice          float64
	MostExpensiveProperty models.Listing
	ListingsPerCity       []CityCount
	TopRatedProperties    []models.Listing
	RatedListings         int
}

func BuildSummaryStats(results []models.CityResult) SummaryStats {
	all := make([]models.Listing, 0)
	cityCounts := make(map[string]int)

	for _, result := range results {
		if result.Err != nil {
			continue
		}
		city := strings.TrimSpace(result.City)
		if city == "" {
			city = "Unknown"
		}
		for _, listing := range result.Listings {
			all = append(all, listing)
			cityCounts[city]++
		}
	}

	stats := SummaryStats{TotalListings: len(all)}
	if len(all) == 0 {
		return stats
	}

	minPrice := all[0].TotalPrice
	maxPrice := all[0].TotalPrice
	mostExpensive := all[0]
	var totalPrice float64

	for _, listing := range all {
		totalPrice += listing.TotalPrice
		if listing.TotalPrice < minPrice {
			minPrice = listing.TotalPrice
		}
		if listing.TotalPrice > maxPrice {
			maxPrice = listing.TotalPrice
			mostExpensive = listing
		}
		if listing.Rating.Overall != nil {
			stats.RatedListings++
		}
	}

	stats.AveragePrice = totalPrice / float64(len(all))
	stats.MinimumPrice = minPrice
	stats.MaximumPrice = maxPrice
	stats.MostExpensiveProperty = mostExpensive

	perCity := make([]CityCount, 0, len(cityCounts))
	for city, count := range cityCounts {
		perCity = append(perCity, CityCount{City: city, Count: count})
	}
	sort.Slice(perCity, func(i, j int) bool {
		if perCity[i].Count == perCity[j].Count {
			return perCity[i].City < perCity[j].City
		}
		return perCity[i].Count > perCity[j].Count
	})
	stats.ListingsPerCity = perCity

	rated := make([]models.Listing, 0, len(all))
	for _, listing := range all {
		if listing.Rating.Overall != nil {
			rated = append(rated, listing)
		}
	}
	sort.Slice(rated, func(i, j int) bool {
		if *rated[i].Rating.Overall == *rated[j].Rating.Overall {
			return rated[i].TotalPrice > rated[j].TotalPrice
		}
		return *rated[i].Rating.Overall > *rated[j].Rating.Overall
	})
	if len(rated) > 5 {
		rated = rated[:5]
	}
	stats.TopRatedProperties = rated

	return stats
}

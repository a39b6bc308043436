package models

// Listing holds one normalized Airbnb property from the search API, plus the
// rating data scraped from its detail page.
type Listing struct {
	ID          int64   `json:"id" bson:"id"`
	Name        string  `json:"name" bson:"name"`
	City        string  `json:"city" bson:"city"`
	State       string  `json:"state" bson:"state"`
	Country     string  `json:"country" bson:"country"`
	NumBedroom  int     `json:"num_bedroom" bson:"num_bedroom"`
	NumBathroom int     `json:"num_bathroom" bson:"num_bathroom"`
	NumBed      int     `json:"num_bed" bson:"num_bed"`
	TotalPrice  float64 `json:"total_accomodation" bson:"total_accomodation"`
	HostName    string  `json:"host_name" bson:"host_name"`
	HostID      int64   `json:"host_id" bson:"host_id"`
	Latitude    float64 `json:"latitude" bson:"latitude"`
	Longitude   float64 `json:"longitude" bson:"longitude"`
	RoomType    string  `json:"room_type" bson:"room_type"`
	PictureURL  string  `json:"picture_url" bson:"picture_url"`
	AmenityIDs  []int   `json:"amenities" bson:"amenities"`
	Rating      Rating  `json:"rating" bson:"rating"`
}

// Rating carries the scores scraped from a listing's detail page. Every field
// is optional — partial scrapes are expected — and a nil field serializes as
// an explicit null rather than being omitted.
type Rating struct {
	Overall       *float64 `json:"overall" bson:"overall"`
	ReviewCount   *int     `json:"review_count" bson:"review_count"`
	Cleanliness   *float64 `json:"cleanliness" bson:"cleanliness"`
	CheckIn       *float64 `json:"check_in" bson:"check_in"`
	Accuracy      *float64 `json:"accuracy" bson:"accuracy"`
	Communication *float64 `json:"communication" bson:"communication"`
	Location      *float64 `json:"location" bson:"location"`
	Value         *float64 `json:"value" bson:"value"`
}

// CityResult is sent back from each worker goroutine.
type CityResult struct {
	City     string
	Index    int // original position in cities slice — preserves output order
	Listings []Listing
	Err      error
}

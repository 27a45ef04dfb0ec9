package models

// Unavailable marks a field whose value could not be resolved on the page.
const Unavailable = "N/A"

// VenueRecord is one scraped venue in the fixed output schema. Every field
// is plain, whitespace-collapsed text; a field that could not be resolved
// carries the Unavailable sentinel rather than being omitted.
type VenueRecord struct {
	Name            string `json:"name"`
	Price           string `json:"price"`
	Timing          string `json:"timing"`
	Address         string `json:"address"`
	Rating          string `json:"rating"`
	Raters          string `json:"raters"`
	AboutVenue      string `json:"about_venue"`
	AvailableSports string `json:"available_sports"`
	Highlights      string `json:"highlights"`
	Amenities       string `json:"amenities"`
	Offer           string `json:"offer"`
	Facilities      string `json:"facilities"`
	VenueRules      string `json:"venue_rules"`
	City            string `json:"city"`
	ScrapedAt       string `json:"scraped_at"`
	SourceURL       string `json:"source_url"`
}

// FieldOrder fixes the column layout of tabular exports.
var FieldOrder = []string{
	"name", "price", "timing", "address", "rating", "raters",
	"about_venue", "available_sports", "highlights", "amenities", "offer",
	"facilities", "venue_rules", "city", "scraped_at", "source_url",
}

// NewVenueRecord returns a record with every schema field pre-set to the
// Unavailable sentinel, so partial extraction still yields a full record.
func NewVenueRecord() VenueRecord {
	return VenueRecord{
		Name:            Unavailable,
		Price:           Unavailable,
		Timing:          Unavailable,
		Address:         Unavailable,
		Rating:          Unavailable,
		Raters:          Unavailable,
		AboutVenue:      Unavailable,
		AvailableSports: Unavailable,
		Highlights:      Unavailable,
		Amenities:       Unavailable,
		Offer:           Unavailable,
		Facilities:      Unavailable,
		VenueRules:      Unavailable,
		City:            Unavailable,
		ScrapedAt:       Unavailable,
		SourceURL:       Unavailable,
	}
}

// Set assigns a schema field by its wire key. Unknown keys are ignored.
func (v *VenueRecord) Set(field, value string) {
	switch field {
	case "name":
		v.Name = value
	case "price":
		v.Price = value
	case "timing":
		v.Timing = value
	case "address":
		v.Address = value
	case "rating":
		v.Rating = value
	case "raters":
		v.Raters = value
	case "about_venue":
		v.AboutVenue = value
	case "available_sports":
		v.AvailableSports = value
	case "highlights":
		v.Highlights = value
	case "amenities":
		v.Amenities = value
	case "offer":
		v.Offer = value
	case "facilities":
		v.Facilities = value
	case "venue_rules":
		v.VenueRules = value
	case "city":
		v.City = value
	case "scraped_at":
		v.ScrapedAt = value
	case "source_url":
		v.SourceURL = value
	}
}

// Get returns a schema field by its wire key. Unknown keys return "".
func (v *VenueRecord) Get(field string) string {
	switch field {
	case "name":
		return v.Name
	case "price":
		return v.Price
	case "timing":
		return v.Timing
	case "address":
		return v.Address
	case "rating":
		return v.Rating
	case "raters":
		return v.Raters
	case "about_venue":
		return v.AboutVenue
	case "available_sports":
		return v.AvailableSports
	case "highlights":
		return v.Highlights
	case "amenities":
		return v.Amenities
	case "offer":
		return v.Offer
	case "facilities":
		return v.Facilities
	case "venue_rules":
		return v.VenueRules
	case "city":
		return v.City
	case "scraped_at":
		return v.ScrapedAt
	case "source_url":
		return v.SourceURL
	}
	return ""
}

// Row returns the record's values in FieldOrder, ready for a CSV writer.
func (v *VenueRecord) Row() []string {
	row := make([]string, 0, len(FieldOrder))
	for _, field := range FieldOrder {
		row = append(row, v.Get(field))
	}
	return row
}

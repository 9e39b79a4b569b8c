package model

import (
	"fmt"
	"time"
)

// Transmission values accepted for a vehicle listing.
const (
	TransmissionManual    = "manual"
	TransmissionAutomatic = "automatic"
)

// Listing lifecycle states. Only active listings are publicly visible.
const (
	StatusActive = "active"
	StatusPaused = "paused"
	StatusSold   = "sold"
)

// PlaceholderImageURL substitutes for listings that were published without
// any image reference.
const PlaceholderImageURL = "https://via.placeholder.com/300x200?text=NO+IMAGE"

// Vehicle represents a vehicle-for-sale record as stored in the `vehicles`
// table, plus its ordered image references.
type Vehicle struct {
	ID           string    // vehicles.id (UUID)
	UserID       uint64    // vehicles.user_id (owner)
	Brand        string    // vehicles.brand
	Model        string    // vehicles.model
	Year         int       // vehicles.year
	Price        int64     // vehicles.price (COP)
	MileageKM    int       // vehicles.mileage_km
	Transmission string    // vehicles.transmission
	Color        string    // vehicles.color ("" when NULL)
	City         string    // vehicles.city
	Description  string    // vehicles.description ("" when NULL)
	Status       string    // vehicles.status
	Images       []string  // vehicle_images.url ordered by sort_order
	CreatedAt    time.Time // vehicles.created_at
	UpdatedAt    time.Time // vehicles.updated_at
}

// Title builds the display title shown on cards and detail pages.
func (v *Vehicle) Title() string {
	return ListingTitle(v.Brand, v.Model, v.Year)
}

// ListingTitle builds the "Brand Model Year" display title shared by view
// records assembled directly from query results.
func ListingTitle(brand, model string, year int) string {
	return fmt.Sprintf("%s %s %d", brand, model, year)
}

// VehicleCard is the transient view record for search results and owner
// listings: a derived projection, never persisted.
type VehicleCard struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Price        int64     `json:"price"`
	MileageKM    int       `json:"mileage_km"`
	Transmission string    `json:"transmission"`
	City         string    `json:"city"`
	ImageURL     string    `json:"image_url"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Seller carries the owner's public contact fields joined onto a detail view.
type Seller struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
}

// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// ListingPublishedEvent is published when a vehicle listing is created.
// It carries enough information for downstream consumers to log, notify or
// feed analytics without querying the primary database.
type ListingPublishedEvent struct {
	VehicleID   string `json:"vehicle_id"`
	UserID      uint64 `json:"user_id"`
	Title       string `json:"title"`
	Price       int64  `json:"price"`
	City        string `json:"city"`
	PublishedAt string `json:"published_at"`
}

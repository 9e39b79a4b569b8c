package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEventLine(t *testing.T) {
	ev := ListingPublishedEvent{
		VehicleID:   "0b4ef3b0-8a53-4c31-9d01-5f2f5b2f7a10",
		UserID:      7,
		Title:       "Mazda CX-30 2021",
		Price:       95_000_000,
		City:        "Bogota",
		PublishedAt: "2026-08-30T14:05:00Z",
	}
	line := FormatEventLine(ev)
	assert.Equal(t,
		"[2026-08-30T14:05:00Z] Listing published | vehicle_id=0b4ef3b0-8a53-4c31-9d01-5f2f5b2f7a10 | user_id=7 | title=\"Mazda CX-30 2021\" | price=95000000 COP | city=\"Bogota\"\n",
		line)
}

func TestListingPublishedEventRoundTrip(t *testing.T) {
	ev := ListingPublishedEvent{VehicleID: "abc", UserID: 3, Title: "Kia Picanto 2022", Price: 52_000_000, City: "Cali", PublishedAt: "2026-08-30T14:05:00Z"}
	body, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"vehicle_id":"abc"`)

	var got ListingPublishedEvent
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, ev, got)
}

package course

import (
	"math"

	"github.com/pfrederiksen/parkrun-map/internal/event"
)

// CoordinatePrecision is the number of fractional digits kept for venue
// coordinates. Five decimals is roughly 1.1m at the equator, well inside
// GPS accuracy for a course start line.
const CoordinatePrecision = 5

// Venue represents one known course: where it is and what to call it.
// Venues are keyed by (event_name, country) and live in the durable cache;
// once added they are never deleted.
type Venue struct {
	EventName  string  `json:"event_name"`
	Country    string  `json:"country"`
	EventTitle string  `json:"event_title"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// Key returns the cache key for a venue
func (v Venue) Key() event.Key {
	return event.Key{EventName: v.EventName, Country: v.Country}
}

// RoundCoordinate rounds a latitude or longitude to CoordinatePrecision
// fractional digits
func RoundCoordinate(c float64) float64 {
	const scale = 1e5
	return math.Round(c*scale) / scale
}

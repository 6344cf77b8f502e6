package event

// Record represents one entry in a runner's event-summary history: a venue
// the runner has visited, how many times, and their best time there.
// Records are produced fresh on every fetch and never persisted.
type Record struct {
	EventName    string `json:"event_name"`
	Country      string `json:"country"`
	RunCount     int    `json:"run_count"`
	PersonalBest string `json:"personal_best"`
}

// Key identifies a venue: slug plus country. The same slug can exist in
// more than one country, so neither field alone is unique.
type Key struct {
	EventName string
	Country   string
}

// Key returns the venue key for a history record
func (r Record) Key() Key {
	return Key{EventName: r.EventName, Country: r.Country}
}

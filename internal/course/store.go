package course

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// csvHeader is the venue cache file's column contract. Downstream tooling
// reads the file directly, so column names and order are fixed.
var csvHeader = []string{"event_name", "country", "event_title", "latitude", "longitude"}

// CacheWriteError indicates the venue cache could not be persisted.
// Reconciliation aborts on it rather than leaving a partial batch behind.
type CacheWriteError struct {
	Path string
	Err  error
}

func (e *CacheWriteError) Error() string {
	return fmt.Sprintf("writing venue cache %s: %v", e.Path, e.Err)
}

func (e *CacheWriteError) Unwrap() error {
	return e.Err
}

// Store is the venue cache persistence contract. The core only needs
// read-all and write-all-replace semantics; backing stores with richer
// capabilities (object storage, partitioned tables) just implement these two.
//
// Stores are single-writer: concurrent reconcilers racing on the same cache
// are out of scope.
type Store interface {
	// Load returns every cached venue, coordinates rounded
	Load() ([]Venue, error)

	// AppendAndResort persists the union of the cache and newVenues,
	// sorted ascending by (country, event_name), and returns it
	AppendAndResort(newVenues []Venue) ([]Venue, error)
}

// FileStore persists the venue cache as a delimited flat file
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the given CSV path.
// A missing file reads as an empty cache.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads all venues from the cache file
func (s *FileStore) Load() ([]Venue, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Venue{}, nil
		}
		return nil, fmt.Errorf("opening venue cache: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading venue cache %s: %w", s.path, err)
	}

	if len(rows) == 0 {
		return []Venue{}, nil
	}

	venues := make([]Venue, 0, len(rows)-1)
	for i, row := range rows[1:] { // skip header
		venue, err := parseVenueRow(row)
		if err != nil {
			return nil, fmt.Errorf("venue cache %s row %d: %w", s.path, i+2, err)
		}
		venues = append(venues, venue)
	}

	return venues, nil
}

// AppendAndResort writes the union of the current cache and newVenues back
// to the file, sorted by (country, event_name)
func (s *FileStore) AppendAndResort(newVenues []Venue) ([]Venue, error) {
	existing, err := s.Load()
	if err != nil {
		return nil, err
	}

	merged := SortVenues(append(existing, newVenues...))

	if err := s.writeAll(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// writeAll replaces the cache file contents with the given venues
func (s *FileStore) writeAll(venues []Venue) error {
	f, err := os.Create(s.path)
	if err != nil {
		return &CacheWriteError{Path: s.path, Err: err}
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(csvHeader); err != nil {
		f.Close()
		return &CacheWriteError{Path: s.path, Err: err}
	}
	for _, v := range venues {
		record := []string{
			v.EventName,
			v.Country,
			v.EventTitle,
			strconv.FormatFloat(v.Latitude, 'f', CoordinatePrecision, 64),
			strconv.FormatFloat(v.Longitude, 'f', CoordinatePrecision, 64),
		}
		if err := writer.Write(record); err != nil {
			f.Close()
			return &CacheWriteError{Path: s.path, Err: err}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return &CacheWriteError{Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &CacheWriteError{Path: s.path, Err: err}
	}

	return nil
}

// SortVenues sorts venues ascending by (country, event_name) and rounds
// their coordinates, returning the same slice
func SortVenues(venues []Venue) []Venue {
	for i := range venues {
		venues[i].Latitude = RoundCoordinate(venues[i].Latitude)
		venues[i].Longitude = RoundCoordinate(venues[i].Longitude)
	}
	sort.Slice(venues, func(i, j int) bool {
		if venues[i].Country != venues[j].Country {
			return venues[i].Country < venues[j].Country
		}
		return venues[i].EventName < venues[j].EventName
	})
	return venues
}

// parseVenueRow converts one CSV record to a Venue
func parseVenueRow(row []string) (Venue, error) {
	if len(row) != len(csvHeader) {
		return Venue{}, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(row))
	}

	lat, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return Venue{}, fmt.Errorf("invalid latitude %q: %w", row[3], err)
	}
	lon, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return Venue{}, fmt.Errorf("invalid longitude %q: %w", row[4], err)
	}

	return Venue{
		EventName:  row[0],
		Country:    row[1],
		EventTitle: row[2],
		Latitude:   RoundCoordinate(lat),
		Longitude:  RoundCoordinate(lon),
	}, nil
}

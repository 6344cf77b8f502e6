package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/parkrun-map/internal/event"
	"github.com/pfrederiksen/parkrun-map/internal/lookup"
)

const (
	// DefaultBaseURL is the site the athlete summary page is fetched from.
	// Athlete IDs are global, so any country's site serves the same summary.
	DefaultBaseURL = "https://www.parkrun.org.uk"

	// UserAgent is sent on every request. The origin serves different (or
	// no) content to unrecognized agents; this legacy browser string is
	// known to get the full page.
	UserAgent = "Mozilla/4.0 (compatible; MSIE 6.0; Windows 98)"

	Timeout = 30 * time.Second
)

// MalformedRowError indicates the event-summary table no longer has the
// shape this scraper was written against. The HTML structure is an
// unversioned external contract; drift is surfaced, never skipped, so a
// runner's visit is not silently dropped.
type MalformedRowError struct {
	Row    int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed event-summary row %d: %s", e.Row, e.Reason)
}

// NetworkError wraps a transport-level failure on an outbound fetch.
// The core never retries; the caller decides what to do with it.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Scraper fetches and parses athlete and venue pages from parkrun sites
type Scraper struct {
	client     *http.Client
	baseURL    string
	venueBase  string
	delay      DelayPolicy
	batchDelay DelayPolicy
}

// Option configures a Scraper
type Option func(*Scraper)

// WithBaseURL overrides the athlete summary site, mainly for tests
func WithBaseURL(baseURL string) Option {
	return func(s *Scraper) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithDelayPolicy sets the politeness delay used before venue-page fetches
func WithDelayPolicy(delay DelayPolicy) Option {
	return func(s *Scraper) {
		s.delay = delay
	}
}

// WithBatchDelayPolicy sets the extra per-venue delay used during
// reconciliation batches
func WithBatchDelayPolicy(delay DelayPolicy) Option {
	return func(s *Scraper) {
		s.batchDelay = delay
	}
}

// New creates a Scraper with the default site, timeout, and delay policy
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL:    DefaultBaseURL,
		delay:      DefaultDelayPolicy(),
		batchDelay: DefaultBatchDelayPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeAthleteID parses an athlete identifier that may carry a
// non-digit prefix, e.g. "A1283894" from a barcode. The prefix is stripped
// and the remainder parsed as a positive integer.
func NormalizeAthleteID(id string) (int, error) {
	trimmed := strings.TrimLeftFunc(strings.TrimSpace(id), func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	if trimmed == "" {
		return 0, fmt.Errorf("athlete id %q has no numeric part", id)
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("athlete id %q: %w", id, err)
	}
	return n, nil
}

// FetchHistory fetches a runner's results-summary page and parses the
// event-summary table into one Record per venue visited
func (s *Scraper) FetchHistory(ctx context.Context, athleteID int) ([]event.Record, error) {
	pageURL := fmt.Sprintf("%s/parkrunner/%d/", s.baseURL, athleteID)

	body, err := s.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return parseHistory(body)
}

// parseHistory extracts history records from a results-summary page.
// The event-summary table is located by its heading anchor; every row must
// parse, since a skipped row is a lost venue visit.
func parseHistory(r io.Reader) ([]event.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing summary page: %w", err)
	}

	table := doc.Find("h3#event-summary").NextAllFiltered("table").First()
	if table.Length() == 0 {
		return nil, &MalformedRowError{Row: 0, Reason: "no event-summary table found"}
	}

	var records []event.Record
	var parseErr error

	table.Find("tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		rec, err := parseHistoryRow(i, row)
		if err != nil {
			parseErr = err
			return false
		}
		records = append(records, rec)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return records, nil
}

// parseHistoryRow extracts one Record from a tr element by fixed column
// position. Sensitive to page layout.
func parseHistoryRow(i int, row *goquery.Selection) (event.Record, error) {
	cells := row.Find("td")
	if cells.Length() < 5 {
		return event.Record{}, &MalformedRowError{Row: i, Reason: fmt.Sprintf("expected 5 cells, got %d", cells.Length())}
	}

	// Column 0: anchor to the venue's results page carries both the slug
	// and, via the hostname, the country.
	href, ok := cells.Eq(0).Find("a").First().Attr("href")
	if !ok {
		return event.Record{}, &MalformedRowError{Row: i, Reason: "no anchor in event cell"}
	}
	eventName, country, err := parseEventLink(href)
	if err != nil {
		if merr, isMalformed := err.(*MalformedRowError); isMalformed {
			merr.Row = i
			return event.Record{}, merr
		}
		return event.Record{}, err
	}

	// Column 1: total run count at the venue
	runCount, err := strconv.Atoi(strings.TrimSpace(cells.Eq(1).Text()))
	if err != nil {
		return event.Record{}, &MalformedRowError{Row: i, Reason: fmt.Sprintf("run count %q is not an integer", cells.Eq(1).Text())}
	}

	// Column 4: personal best time inside a nested span
	span := cells.Eq(4).Find("span").First()
	if span.Length() == 0 {
		return event.Record{}, &MalformedRowError{Row: i, Reason: "no duration element in personal-best cell"}
	}

	return event.Record{
		EventName:    eventName,
		Country:      country,
		RunCount:     runCount,
		PersonalBest: event.NormalizeTime(strings.TrimSpace(span.Text())),
	}, nil
}

// parseEventLink derives the venue slug and country from a results-page
// link, e.g. https://www.parkrun.org.uk/highburyfields/results ->
// ("highburyfields", "UK")
func parseEventLink(href string) (eventName, country string, err error) {
	u, err := url.Parse(href)
	if err != nil {
		return "", "", &MalformedRowError{Reason: fmt.Sprintf("unparseable event link %q", href)}
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 {
		return "", "", &MalformedRowError{Reason: fmt.Sprintf("event link path %q too short", u.Path)}
	}
	eventName = segments[len(segments)-2]

	_, suffix, found := strings.Cut(u.Hostname(), "parkrun")
	if !found {
		return "", "", &MalformedRowError{Reason: fmt.Sprintf("host %q is not a parkrun domain", u.Hostname())}
	}

	country, err = lookup.Country(suffix)
	if err != nil {
		return "", "", err
	}

	return eventName, country, nil
}

// get issues a GET with the fixed User-Agent and returns the response body
func (s *Scraper) get(ctx context.Context, pageURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: pageURL, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &NetworkError{URL: pageURL, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	return resp.Body, nil
}

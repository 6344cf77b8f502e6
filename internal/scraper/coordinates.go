package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/parkrun-map/internal/course"
	"github.com/pfrederiksen/parkrun-map/internal/lookup"
)

// ErrCoordinatesNotFound indicates the course map widget's script carried
// no coordinate literal
var ErrCoordinatesNotFound = errors.New("no coordinates found in course map script")

// coordinatePattern matches the bracketed [lat,lon] literals the map widget
// embeds in its first inline script. This is a literal contract with the
// widget's generated code, not a general JSON parse.
var coordinatePattern = regexp.MustCompile(`\[(-?[0-9]+\.[0-9]+),(-?[0-9]+\.[0-9]+)\]`)

// WithVenueBaseURL overrides the per-country venue site template, mainly
// for tests
func WithVenueBaseURL(baseURL string) Option {
	return func(s *Scraper) {
		s.venueBase = baseURL
	}
}

// venueURL returns the root URL for a venue's pages on its country's site
func (s *Scraper) venueURL(eventName, country string) (string, error) {
	if s.venueBase != "" {
		return fmt.Sprintf("%s/%s", s.venueBase, eventName), nil
	}

	suffix, err := lookup.DomainSuffix(country)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://www.parkrun%s/%s", suffix, eventName), nil
}

// FetchVenue scrapes a venue's display title and coordinates from its
// country site: the latest-results page for the title, then the course page
// for the embedded map widget. A politeness delay precedes each of the two
// fetches, plus a short per-venue delay that spaces out reconciliation
// batches.
func (s *Scraper) FetchVenue(ctx context.Context, eventName, country string) (course.Venue, error) {
	base, err := s.venueURL(eventName, country)
	if err != nil {
		return course.Venue{}, err
	}

	if err := s.batchDelay.Sleep(ctx); err != nil {
		return course.Venue{}, err
	}

	if err := s.delay.Sleep(ctx); err != nil {
		return course.Venue{}, err
	}
	title, err := s.fetchEventTitle(ctx, base+"/results/latestresults/")
	if err != nil {
		return course.Venue{}, err
	}

	if err := s.delay.Sleep(ctx); err != nil {
		return course.Venue{}, err
	}
	lat, lon, err := s.fetchCoordinates(ctx, base+"/course/")
	if err != nil {
		return course.Venue{}, err
	}

	return course.Venue{
		EventName:  eventName,
		Country:    country,
		EventTitle: title,
		Latitude:   course.RoundCoordinate(lat),
		Longitude:  course.RoundCoordinate(lon),
	}, nil
}

// fetchEventTitle reads the venue's display name from the results page
// header
func (s *Scraper) fetchEventTitle(ctx context.Context, resultsURL string) (string, error) {
	body, err := s.get(ctx, resultsURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("parsing results page: %w", err)
	}

	heading := doc.Find("div.Results-header h1").First()
	if heading.Length() == 0 {
		return "", fmt.Errorf("no results header on %s", resultsURL)
	}

	return heading.Text(), nil
}

// fetchCoordinates follows the course page's embedded map frame and scans
// its first inline script for the venue's coordinate pair
func (s *Scraper) fetchCoordinates(ctx context.Context, courseURL string) (lat, lon float64, err error) {
	body, err := s.get(ctx, courseURL)
	if err != nil {
		return 0, 0, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing course page: %w", err)
	}

	src, ok := doc.Find("iframe").First().Attr("src")
	if !ok {
		return 0, 0, fmt.Errorf("no map frame on %s", courseURL)
	}

	widgetURL, err := resolveURL(courseURL, src)
	if err != nil {
		return 0, 0, fmt.Errorf("resolving map frame url %q: %w", src, err)
	}

	widgetBody, err := s.get(ctx, widgetURL)
	if err != nil {
		return 0, 0, err
	}
	defer widgetBody.Close()

	widgetDoc, err := goquery.NewDocumentFromReader(widgetBody)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing map widget page: %w", err)
	}

	script := widgetDoc.Find("script").First().Text()
	match := coordinatePattern.FindStringSubmatch(script)
	if match == nil {
		return 0, 0, fmt.Errorf("%w: %s", ErrCoordinatesNotFound, widgetURL)
	}

	lat, err = strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q: %w", match[1], err)
	}
	lon, err = strconv.ParseFloat(match[2], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q: %w", match[2], err)
	}

	return lat, lon, nil
}

// resolveURL makes a possibly-relative href absolute against its page URL
func resolveURL(pageURL, href string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

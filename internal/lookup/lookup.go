package lookup

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedDomain indicates a parkrun domain suffix (or country name)
// with no entry in the lookup tables. Every site variant must be enumerated
// here; an unknown suffix is a configuration gap, never something to guess.
var ErrUnrecognizedDomain = errors.New("unrecognized parkrun domain")

// domainSuffixes maps country names to the domain extension that follows
// "parkrun" in that country's site hostname, e.g. UK -> www.parkrun.org.uk.
var domainSuffixes = map[string]string{
	"Australia":    ".com.au",
	"Canada":       ".ca",
	"Denmark":      ".dk",
	"Finland":      ".fi",
	"France":       ".fr",
	"Germany":      ".com.de",
	"Ireland":      ".ie",
	"Italy":        ".it",
	"Japan":        ".jp",
	"Malaysia":     ".my",
	"Netherlands":  ".co.nl",
	"New Zealand":  ".co.nz",
	"Norway":       ".no",
	"Poland":       ".pl",
	"Russia":       ".ru",
	"Singapore":    ".sg",
	"South Africa": ".co.za",
	"Sweden":       ".se",
	"UK":           ".org.uk",
	"USA":          ".us",
}

// countries is the inverse of domainSuffixes, built once at init
var countries = func() map[string]string {
	m := make(map[string]string, len(domainSuffixes))
	for country, suffix := range domainSuffixes {
		m[suffix] = country
	}
	return m
}()

// DomainSuffix returns the domain extension for a country name
func DomainSuffix(country string) (string, error) {
	suffix, ok := domainSuffixes[country]
	if !ok {
		return "", fmt.Errorf("%w: no suffix for country %q", ErrUnrecognizedDomain, country)
	}
	return suffix, nil
}

// Country returns the country name for a domain extension
func Country(suffix string) (string, error) {
	country, ok := countries[suffix]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedDomain, suffix)
	}
	return country, nil
}

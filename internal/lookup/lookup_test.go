package lookup

import (
	"errors"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	for country := range domainSuffixes {
		suffix, err := DomainSuffix(country)
		if err != nil {
			t.Fatalf("DomainSuffix(%q) failed: %v", country, err)
		}

		back, err := Country(suffix)
		if err != nil {
			t.Fatalf("Country(%q) failed: %v", suffix, err)
		}
		if back != country {
			t.Errorf("round trip for %q via %q gave %q", country, suffix, back)
		}
	}
}

func TestKnownMappings(t *testing.T) {
	tests := []struct {
		suffix  string
		country string
	}{
		{".org.uk", "UK"},
		{".com.au", "Australia"},
		{".co.nz", "New Zealand"},
		{".us", "USA"},
		{".pl", "Poland"},
	}

	for _, tt := range tests {
		t.Run(tt.suffix, func(t *testing.T) {
			country, err := Country(tt.suffix)
			if err != nil {
				t.Fatalf("Country(%q) failed: %v", tt.suffix, err)
			}
			if country != tt.country {
				t.Errorf("Country(%q) = %q, expected %q", tt.suffix, country, tt.country)
			}
		})
	}
}

func TestUnrecognizedDomain(t *testing.T) {
	if _, err := Country(".example"); !errors.Is(err, ErrUnrecognizedDomain) {
		t.Errorf("Country(.example) error = %v, expected ErrUnrecognizedDomain", err)
	}

	if _, err := DomainSuffix("Atlantis"); !errors.Is(err, ErrUnrecognizedDomain) {
		t.Errorf("DomainSuffix(Atlantis) error = %v, expected ErrUnrecognizedDomain", err)
	}
}

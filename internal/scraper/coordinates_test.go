package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newVenueServer serves the three pages a venue fetch walks: results,
// course, and the map widget the course page's iframe points at
func newVenueServer(t *testing.T, scriptBody string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/testevent/results/latestresults/", func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != UserAgent {
			t.Errorf("expected User-Agent %q, got %q", UserAgent, ua)
		}
		fmt.Fprint(w, `<html><body><div class="Results-header"><h1>Test parkrun</h1></div></body></html>`)
	})
	mux.HandleFunc("/testevent/course/", func(w http.ResponseWriter, r *http.Request) {
		// relative src: must be resolved against the course page URL
		fmt.Fprint(w, `<html><body><iframe src="/widget/map"></iframe></body></html>`)
	})
	mux.HandleFunc("/widget/map", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><script>%s</script></head><body></body></html>`, scriptBody)
	})

	return httptest.NewServer(mux)
}

func TestFetchVenue(t *testing.T) {
	script := `var route = [[51.5468971234,-0.1029123456],[51.547201,-0.103544]];`
	server := newVenueServer(t, script)
	defer server.Close()

	s := New(WithVenueBaseURL(server.URL), WithDelayPolicy(DelayPolicy{}), WithBatchDelayPolicy(DelayPolicy{}))

	venue, err := s.FetchVenue(context.Background(), "testevent", "UK")
	if err != nil {
		t.Fatalf("FetchVenue failed: %v", err)
	}

	if venue.EventName != "testevent" || venue.Country != "UK" {
		t.Errorf("unexpected venue key: %s/%s", venue.Country, venue.EventName)
	}
	if venue.EventTitle != "Test parkrun" {
		t.Errorf("expected title 'Test parkrun', got %q", venue.EventTitle)
	}
	// first coordinate pair wins, rounded to 5 decimals
	if venue.Latitude != 51.54690 {
		t.Errorf("expected latitude 51.54690, got %v", venue.Latitude)
	}
	if venue.Longitude != -0.10291 {
		t.Errorf("expected longitude -0.10291, got %v", venue.Longitude)
	}
}

func TestFetchVenueNoCoordinates(t *testing.T) {
	server := newVenueServer(t, `console.log("no markers here");`)
	defer server.Close()

	s := New(WithVenueBaseURL(server.URL), WithDelayPolicy(DelayPolicy{}), WithBatchDelayPolicy(DelayPolicy{}))

	_, err := s.FetchVenue(context.Background(), "testevent", "UK")
	if !errors.Is(err, ErrCoordinatesNotFound) {
		t.Fatalf("expected ErrCoordinatesNotFound, got %v", err)
	}
}

func TestFetchVenueUnknownCountry(t *testing.T) {
	s := New(WithDelayPolicy(DelayPolicy{}), WithBatchDelayPolicy(DelayPolicy{}))

	if _, err := s.FetchVenue(context.Background(), "testevent", "Atlantis"); err == nil {
		t.Fatal("expected error for unknown country")
	}
}

func TestDelayPolicyZeroValue(t *testing.T) {
	start := time.Now()
	if err := (DelayPolicy{}).Sleep(context.Background()); err != nil {
		t.Fatalf("Sleep failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("zero policy slept %v", elapsed)
	}
}

func TestDelayPolicyBounds(t *testing.T) {
	policy := DelayPolicy{Min: 10 * time.Millisecond, Max: 30 * time.Millisecond}

	start := time.Now()
	if err := policy.Sleep(context.Background()); err != nil {
		t.Fatalf("Sleep failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("slept %v, below minimum", elapsed)
	}
}

func TestDelayPolicyCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := DelayPolicy{Min: time.Hour, Max: 2 * time.Hour}
	if err := policy.Sleep(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

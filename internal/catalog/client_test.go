package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"appresolve/internal/catalog"
)

func TestSearchBuildsSoftwareQuery(t *testing.T) {
	var gotQuery map[string]string
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotUA = r.Header.Get("User-Agent")
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultCount":1,"results":[{"trackId":42,"trackName":"Period Tracker","bundleId":"com.acme.period","sellerName":"Acme","primaryGenreName":"Health & Fitness","genres":["Health & Fitness"]}]}`))
	}))
	defer server.Close()

	client, err := catalog.New(server.URL, "TestAgent/1.0", 5*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	records, err := client.Search(context.Background(), "period tracker", "gb", "en_us", 25)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if records[0].TrackID != 42 || records[0].TrackName != "Period Tracker" {
		t.Fatalf("unexpected record: %+v", records[0])
	}

	if gotUA != "TestAgent/1.0" {
		t.Fatalf("unexpected user agent: %q", gotUA)
	}
	want := map[string]string{
		"term":    "period tracker",
		"entity":  "software",
		"media":   "software",
		"country": "gb",
		"lang":    "en_us",
		"limit":   "25",
	}
	for key, value := range want {
		if gotQuery[key] != value {
			t.Fatalf("query param %s: got %q want %q", key, gotQuery[key], value)
		}
	}
}

func TestSearchRejectsEmptyTerm(t *testing.T) {
	client, err := catalog.New("https://example.invalid", "", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.Search(context.Background(), "   ", "gb", "en_us", 10); err == nil {
		t.Fatal("expected error for empty term")
	}
}

func TestSearchSurfacesHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusForbidden)
	}))
	defer server.Close()

	client, err := catalog.New(server.URL, "", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.Search(context.Background(), "anything", "jp", "ja_jp", 5); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestLookupReturnsNilWhenAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lookup" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("id"); got != "99" {
			t.Errorf("unexpected id param %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultCount":0,"results":[]}`))
	}))
	defer server.Close()

	client, err := catalog.New(server.URL, "", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	record, err := client.Lookup(context.Background(), 99, "gb", "en_us")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %+v", record)
	}
}

func TestLookupReturnsFirstResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultCount":1,"results":[{"trackId":7,"trackName":"Clue","bundleId":"com.clue.app","languageCodesISO2A":["EN","DE"],"releaseDate":"2013-05-01T00:00:00Z"}]}`))
	}))
	defer server.Close()

	client, err := catalog.New(server.URL, "", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	record, err := client.Lookup(context.Background(), 7, "gb", "en_us")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if record == nil || record.BundleID != "com.clue.app" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if len(record.LanguageCodes) != 2 {
		t.Fatalf("unexpected language codes: %v", record.LanguageCodes)
	}
}

func TestSellerFallsBackToArtistName(t *testing.T) {
	record := catalog.Record{ArtistName: "Acme Ltd"}
	if got := record.Seller(); got != "Acme Ltd" {
		t.Fatalf("unexpected seller: %q", got)
	}
	record.SellerName = "Acme Corp"
	if got := record.Seller(); got != "Acme Corp" {
		t.Fatalf("unexpected seller: %q", got)
	}
}

func TestPacingSpacesCallsPerCountry(t *testing.T) {
	var mu sync.Mutex
	times := map[string][]time.Time{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		country := r.URL.Query().Get("country")
		times[country] = append(times[country], time.Now())
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultCount":0,"results":[]}`))
	}))
	defer server.Close()

	const interval = 50 * time.Millisecond
	client, err := catalog.New(server.URL, "", time.Second, catalog.WithPacing(interval))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := client.Search(ctx, "app", "gb", "en_us", 1); err != nil {
			t.Fatalf("Search: %v", err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	calls := times["gb"]
	if len(calls) != 2 {
		t.Fatalf("expected two calls, got %d", len(calls))
	}
	if gap := calls[1].Sub(calls[0]); gap < interval-5*time.Millisecond {
		t.Fatalf("calls not paced: gap %v", gap)
	}
}

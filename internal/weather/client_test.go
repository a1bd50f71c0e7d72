package weather

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func sampleCurrent() map[string]any {
	return map[string]any{
		"main": map[string]any{
			"temp":       -7.4,
			"feels_like": -12.1,
			"humidity":   81,
			"pressure":   1015,
		},
		"wind":    map[string]any{"speed": 3.5},
		"weather": []map[string]any{{"main": "Snow", "description": "небольшой снег"}},
		"sys":     map[string]any{"country": "RU"},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key")
	c.apiBase = srv.URL
	return c
}

func TestCurrent_CyrillicCityQueriedWithCountry(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/data/2.5/weather") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		_ = json.NewEncoder(w).Encode(sampleCurrent())
	})

	msg, err := c.Current(context.Background(), "Москва")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if gotQuery != "Москва,RU" {
		t.Fatalf("cyrillic city must be scoped to RU first, got q=%q", gotQuery)
	}
	if !strings.Contains(msg, "Москва") || !strings.Contains(msg, "Небольшой снег") {
		t.Fatalf("unexpected message: %q", msg)
	}
	if !strings.Contains(msg, "-7.4°C") {
		t.Fatalf("temperature missing: %q", msg)
	}
}

func TestCurrent_PlainQueryForLatinCity(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "London" {
			t.Fatalf("want plain q=London, got %q", q)
		}
		_ = json.NewEncoder(w).Encode(sampleCurrent())
	})

	if _, err := c.Current(context.Background(), "London"); err != nil {
		t.Fatalf("lookup: %v", err)
	}
}

func TestCurrent_LangFreeFallbackGivesMinimalAnswer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/geo/1.0/direct") {
			t.Fatal("geocoding must not be reached when the lang-free query hits")
		}
		if r.URL.Query().Get("lang") != "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(sampleCurrent())
	})

	msg, err := c.Current(context.Background(), "Gorod")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if msg != "🌡 Gorod: -7.4°C" {
		t.Fatalf("want minimal temperature-only answer, got %q", msg)
	}
}

func TestCurrent_GeocodingFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/geo/1.0/direct"):
			_ = json.NewEncoder(w).Encode([]map[string]any{{
				"lat": 55.75, "lon": 37.62,
				"name":        "Moscow",
				"country":     "RU",
				"local_names": map[string]string{"ru": "Москва"},
			}})
		case r.URL.Query().Get("lat") != "":
			_ = json.NewEncoder(w).Encode(sampleCurrent())
		default:
			// direct city queries miss, forcing the fallback
			w.WriteHeader(http.StatusNotFound)
		}
	})

	msg, err := c.Current(context.Background(), "Moskva")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !strings.Contains(msg, "Москва, RU") {
		t.Fatalf("geocoded lookup must prefer the russian local name, got %q", msg)
	}
}

func TestCurrent_AllStrategiesMiss(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/geo/1.0/direct") {
			_ = json.NewEncoder(w).Encode([]map[string]any{})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Current(context.Background(), "Nowhere")
	if !errors.Is(err, ErrCityNotFound) {
		t.Fatalf("want ErrCityNotFound, got %v", err)
	}
}

func TestHasCyrillic(t *testing.T) {
	if !hasCyrillic("Санкт-Петербург") {
		t.Fatal("cyrillic city not detected")
	}
	if hasCyrillic("London") {
		t.Fatal("latin city misdetected")
	}
}

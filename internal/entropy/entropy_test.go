package entropy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSequenceCyclesAndCounts(t *testing.T) {
	s := NewSequence(0.1, 0.2, 0.3)
	var got []float64
	for range 5 {
		got = append(got, s.Float64())
	}
	want := []float64{0.1, 0.2, 0.3, 0.1, 0.2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("draws mismatch (-want +got):\n%s", diff)
	}
	if s.Drawn() != 5 {
		t.Errorf("Drawn() = %d, want 5", s.Drawn())
	}
}

func TestEmptySequenceYieldsZero(t *testing.T) {
	s := NewSequence()
	if v := s.Float64(); v != 0 {
		t.Errorf("Float64() = %v, want 0", v)
	}
}

func TestSeededIsReproducible(t *testing.T) {
	a, b := NewSeeded(7), NewSeeded(7)
	for i := range 100 {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("draw %d differs: %v vs %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d out of range: %v", i, va)
		}
	}
}

func TestCryptoInUnitInterval(t *testing.T) {
	var c Crypto
	for range 1000 {
		if v := c.Float64(); v < 0 || v >= 1 {
			t.Fatalf("crypto draw out of range: %v", v)
		}
	}
}

func TestNilClientFallsBack(t *testing.T) {
	c := NewClient("")
	if c != nil {
		t.Fatal("NewClient with empty key should return nil")
	}
	if v := c.Float64(); v < 0 || v >= 1 {
		t.Errorf("fallback draw out of range: %v", v)
	}
}

func TestClientServesFromPool(t *testing.T) {
	c := NewClient("key")
	for i := range refillThreshold + 2 {
		c.pool = append(c.pool, float64(i)/100)
	}
	if v := c.Float64(); v != 0 {
		t.Errorf("first pooled draw = %v, want 0", v)
	}
	if v := c.Float64(); v != 0.01 {
		t.Errorf("second pooled draw = %v, want 0.01", v)
	}
	if len(c.pool) != refillThreshold {
		t.Errorf("pool size = %d, want %d", len(c.pool), refillThreshold)
	}
}

func TestClientRefillsFromEndpoint(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Params struct {
				APIKey string `json:"apiKey"`
			} `json:"params"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotKey = req.Params.APIKey
		fmt.Fprint(w, `{"result":{"random":{"data":[0.25,1.0,0.5]}}}`)
	}))
	defer srv.Close()

	c := NewClient("secret")
	c.endpoint = srv.URL

	if v := c.Float64(); v != 0.25 {
		t.Errorf("first draw = %v, want 0.25", v)
	}
	if gotKey != "secret" {
		t.Errorf("api key sent = %q, want %q", gotKey, "secret")
	}
	// 1.0 is dropped so callers never see the closed upper bound.
	if diff := cmp.Diff([]float64{0.5}, c.pool); diff != "" {
		t.Errorf("pool mismatch (-want +got):\n%s", diff)
	}
}

func TestClientFallsBackOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"message":"quota exceeded"}}`)
	}))
	defer srv.Close()

	c := NewClient("secret")
	c.endpoint = srv.URL
	if v := c.Float64(); v < 0 || v >= 1 {
		t.Errorf("fallback draw out of range: %v", v)
	}
	if len(c.pool) != 0 {
		t.Errorf("pool should stay empty, got %d values", len(c.pool))
	}
	if _, err := c.fetch(); err == nil || err.Error() != "quota exceeded" {
		t.Errorf("fetch error = %v, want quota exceeded", err)
	}
}

package api

import (
	"testing"
	"time"
)

func TestCacheGetBeforeAndAfterExpiry(t *testing.T) {
	c := NewResponseCache()

	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	payload := BrowseResponse{"k": "v"}
	c.Set("k", payload, 100*time.Millisecond)

	if got, ok := c.Get("k"); !ok || got["k"] != "v" {
		t.Fatalf("Get() = %v, %v; want cached payload", got, ok)
	}

	now = now.Add(150 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("Get() returned an expired entry")
	}

	// The expired entry is evicted by the lookup itself.
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expired lookup, want 0", c.Len())
	}

	// A fresh Set starts a new TTL window.
	c.Set("k", payload, 100*time.Millisecond)
	now = now.Add(50 * time.Millisecond)

	if _, ok := c.Get("k"); !ok {
		t.Error("entry re-set after expiry should be live in its new window")
	}
}

func TestCacheSetOverwrites(t *testing.T) {
	c := NewResponseCache()

	c.Set("k", BrowseResponse{"v": 1.0}, time.Minute)
	c.Set("k", BrowseResponse{"v": 2.0}, time.Minute)

	got, ok := c.Get("k")
	if !ok || got["v"] != 2.0 {
		t.Errorf("Get() = %v, want overwritten value", got)
	}
}

func TestCachePrefixInvalidation(t *testing.T) {
	c := NewResponseCache()

	c.Set("home_a", BrowseResponse{}, time.Minute)
	c.Set("home_b", BrowseResponse{}, time.Minute)
	c.Set("search_x", BrowseResponse{}, time.Minute)

	c.InvalidatePrefix("home_")

	if _, ok := c.Get("home_a"); ok {
		t.Error("home_a should be invalidated")
	}

	if _, ok := c.Get("home_b"); ok {
		t.Error("home_b should be invalidated")
	}

	if _, ok := c.Get("search_x"); !ok {
		t.Error("search_x should survive a home_ invalidation")
	}
}

func TestCacheInvalidateAll(t *testing.T) {
	c := NewResponseCache()

	c.Set("a", BrowseResponse{}, time.Minute)
	c.Set("b", BrowseResponse{}, time.Minute)

	c.InvalidateAll()

	if c.Len() != 0 {
		t.Errorf("Len() = %d after InvalidateAll, want 0", c.Len())
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a := request{route: "browse", family: prefixHome, params: map[string]any{"browseId": "FEmusic_home", "x": 1}}
	b := request{route: "browse", family: prefixHome, params: map[string]any{"x": 1, "browseId": "FEmusic_home"}}

	if a.fingerprint() != b.fingerprint() {
		t.Errorf("fingerprints differ for identical params: %q vs %q", a.fingerprint(), b.fingerprint())
	}

	other := searchRequest("query")
	if a.fingerprint() == other.fingerprint() {
		t.Error("different requests should not share a fingerprint")
	}
}

func TestFingerprintCarriesFamilyPrefix(t *testing.T) {
	if got := homeRequest("").fingerprint(); got[:len(prefixHome)] != prefixHome {
		t.Errorf("home fingerprint %q missing family prefix", got)
	}

	if got := searchRequest("q").fingerprint(); got[:len(prefixSearch)] != prefixSearch {
		t.Errorf("search fingerprint %q missing family prefix", got)
	}
}

package handlers

import (
	"net/http/httptest"
	"testing"
)

func TestParseIATAQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/trips/search?origin=del&destination=BOMX", nil)

	got, errMsg := parseIATAQuery(r, "origin")
	if errMsg != "" || got != "DEL" {
		t.Fatalf("origin = %q (%q), want DEL", got, errMsg)
	}

	if _, errMsg := parseIATAQuery(r, "destination"); errMsg == "" {
		t.Fatal("expected error for 4-letter code")
	}
	if _, errMsg := parseIATAQuery(r, "missing"); errMsg == "" {
		t.Fatal("expected error for missing param")
	}
}

func TestParseDateQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/?depart_date=2026-03-10&bad=10-03-2026", nil)

	got, errMsg := parseDateQuery(r, "depart_date", true)
	if errMsg != "" || got != "2026-03-10" {
		t.Fatalf("date = %q (%q)", got, errMsg)
	}
	if _, errMsg := parseDateQuery(r, "bad", false); errMsg == "" {
		t.Fatal("expected error for malformed date")
	}
	if got, errMsg := parseDateQuery(r, "return_date", false); errMsg != "" || got != "" {
		t.Fatalf("optional missing date should be empty, got %q (%q)", got, errMsg)
	}
	if _, errMsg := parseDateQuery(r, "return_date", true); errMsg == "" {
		t.Fatal("expected error for required missing date")
	}
}

func TestParsePositiveIntQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/?adults=2&zero=0", nil)

	got, errMsg := parsePositiveIntQuery(r, "adults", 1)
	if errMsg != "" || got != 2 {
		t.Fatalf("adults = %d (%q), want 2", got, errMsg)
	}
	if got, _ := parsePositiveIntQuery(r, "missing", 1); got != 1 {
		t.Fatalf("fallback = %d, want 1", got)
	}
	if _, errMsg := parsePositiveIntQuery(r, "zero", 1); errMsg == "" {
		t.Fatal("expected error for zero")
	}
}

func TestParseSessionPath(t *testing.T) {
	cases := []struct {
		path   string
		id     string
		action string
		ok     bool
	}{
		{"/v1/sessions/abc-123", "abc-123", "", true},
		{"/v1/sessions/abc-123/", "abc-123", "", true},
		{"/v1/sessions/abc-123/selection", "abc-123", "selection", true},
		{"/v1/sessions/abc-123/fare", "abc-123", "fare", true},
		{"/v1/sessions/abc-123/booking", "abc-123", "booking", true},
		{"/v1/sessions/abc-123/unknown", "", "", false},
		{"/v1/sessions/", "", "", false},
		{"/v1/other/abc", "", "", false},
	}

	for _, tc := range cases {
		id, action, ok := parseSessionPath(tc.path)
		if id != tc.id || action != tc.action || ok != tc.ok {
			t.Fatalf("%s: got (%q,%q,%v), want (%q,%q,%v)", tc.path, id, action, ok, tc.id, tc.action, tc.ok)
		}
	}
}

package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

func parseIATAQuery(r *http.Request, key string) (string, string) {
	raw := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get(key)))
	if raw == "" {
		return "", key + " is required"
	}
	if len(raw) != 3 {
		return "", key + " must be a 3-letter IATA code"
	}
	return raw, ""
}

func parseDateQuery(r *http.Request, key string, required bool) (string, string) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		if required {
			return "", key + " is required"
		}
		return "", ""
	}
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return "", key + " must be YYYY-MM-DD"
	}
	return raw, ""
}

func parsePositiveIntQuery(r *http.Request, key string, fallback int) (int, string) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, ""
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return 0, key + " must be a positive integer"
	}
	return parsed, ""
}

func parseFloatQuery(r *http.Request, key string, fallback float64) (float64, string) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, ""
	}

	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 {
		return 0, key + " must be a non-negative number"
	}
	return parsed, ""
}

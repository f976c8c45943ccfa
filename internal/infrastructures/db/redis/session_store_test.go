package redis

import (
	"testing"
	"time"
)

func TestSessionTTL_FallsBackToDefault(t *testing.T) {
	cases := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"zero", 0, defaultSessionTTL},
		{"negative", -time.Minute, defaultSessionTTL},
		{"configured", 20 * time.Minute, 20 * time.Minute},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sessionTTL(tc.in); got != tc.want {
				t.Fatalf("sessionTTL(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

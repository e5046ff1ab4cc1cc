package main

import "testing"

func TestLogLevel(t *testing.T) {
	tests := []struct {
		configured string
		debug      bool
		want       string
	}{
		{"info", false, "info"},
		{"warn", false, "warn"},
		{"info", true, "debug"},
		{"error", true, "debug"},
	}

	for _, tt := range tests {
		if got := logLevel(tt.configured, tt.debug); got != tt.want {
			t.Errorf("logLevel(%q, %v) = %q, want %q", tt.configured, tt.debug, got, tt.want)
		}
	}
}

package main

import (
	"path/filepath"
	"testing"
)

func TestResolveReportTarget(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		out    string
		format string
		want   string
	}{
		{"empty out uses default name", "", "json", "duplicates.json"},
		{"empty out follows format", "", "csv", "duplicates.csv"},
		{"existing directory gets default name inside", dir, "ndjson", filepath.Join(dir, "duplicates.ndjson")},
		{"explicit file path kept as-is", filepath.Join(dir, "report.json"), "json", filepath.Join(dir, "report.json")},
		{"nonexistent path kept as-is", filepath.Join(dir, "sub", "r.csv"), "csv", filepath.Join(dir, "sub", "r.csv")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveReportTarget(tt.out, tt.format); got != tt.want {
				t.Fatalf("resolveReportTarget(%q, %q) = %q, want %q", tt.out, tt.format, got, tt.want)
			}
		})
	}
}

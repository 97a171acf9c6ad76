package macrotracker

import (
	"testing"
	"time"

	"github.com/siddhantjain/macro-tracker/internal/tracker"
)

func TestParseMealItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    tracker.MealItem
		wantErr bool
	}{
		{raw: "rice", want: tracker.MealItem{Name: "rice", Quantity: 1, Unit: "serving"}},
		{raw: "rice:2", want: tracker.MealItem{Name: "rice", Quantity: 2, Unit: "serving"}},
		{raw: "rice:1.5:cup", want: tracker.MealItem{Name: "rice", Quantity: 1.5, Unit: "cup"}},
		{raw: " dal makhani : 2 : cup ", want: tracker.MealItem{Name: "dal makhani", Quantity: 2, Unit: "cup"}},
		{raw: "", wantErr: true},
		{raw: ":2:cup", wantErr: true},
		{raw: "rice:abc", wantErr: true},
		{raw: "rice:-1", wantErr: true},
		{raw: "rice:1:cup:extra", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseMealItem(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseMealItem(%q): expected error, got %+v", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseMealItem(%q): %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("parseMealItem(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseTimestampArg(t *testing.T) {
	t.Parallel()

	ts, err := parseTimestampArg("2026-03-10T12:30:00.001Z")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2026, 3, 10, 12, 30, 0, int(time.Millisecond), time.UTC)
	if !ts.Equal(want) {
		t.Fatalf("expected %s, got %s", want, ts)
	}

	if _, err := parseTimestampArg("yesterday"); err == nil {
		t.Fatalf("expected error for non-RFC3339 input")
	}
	if _, err := parseTimestampArg("2026-03-10"); err == nil {
		t.Fatalf("expected error for date-only input")
	}
}

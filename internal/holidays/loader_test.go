package holidays

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lululau/rangecal/internal/dates"
)

func TestDecodeList(t *testing.T) {
	set, err := Decode([]byte(`["2025-04-21", "2025-05-01", "2025-04-21"]`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 holidays, got %d", set.Len())
	}
	if !set.Contains(dates.New(2025, time.April, 21)) {
		t.Fatalf("expected 2025-04-21 to be a holiday")
	}
	if set.Contains(dates.New(2025, time.April, 22)) {
		t.Fatalf("2025-04-22 should not be a holiday")
	}
}

func TestDecodeYearlyLayout(t *testing.T) {
	data := `[{"year":"2025","holiday":{
		"01-01":{"holiday":true,"name":"New Year","wage":3,"date":"2025-01-01"},
		"01-26":{"holiday":false,"name":"Working Sunday","wage":1,"date":"2025-01-26"},
		"05-01":{"holiday":"yes","name":"Labour Day","wage":3,"date":"2025-05-01"}
	}}]`
	set, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	want := []string{"2025-01-01", "2025-05-01"}
	got := set.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys()=%v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys()=%v want %v", got, want)
		}
	}
}

func TestDecodeSkipsBadEntries(t *testing.T) {
	set, err := Decode([]byte(`["2025-04-21", "21.04.2025", "2025-02-30"]`))
	if err == nil {
		t.Fatalf("expected an error for bad entries")
	}
	if !errors.Is(err, dates.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate in %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("expected the valid entry to survive, got %d", set.Len())
	}
}

func TestParseMalformedIsEmpty(t *testing.T) {
	for _, in := range []string{`{"nope":`, `42`, `not json`} {
		set := Parse(context.Background(), []byte(in))
		if set.Len() != 0 {
			t.Fatalf("Parse(%q) should give an empty set, got %v", in, set.Keys())
		}
	}
	if set := Parse(context.Background(), nil); set.Len() != 0 {
		t.Fatalf("empty input should give an empty set")
	}
}

func TestLoadFromFileAndCacheAge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.json")
	if err := os.WriteFile(path, []byte(`["2024-12-25"]`), 0o644); err != nil {
		t.Fatal(err)
	}
	set, err := LoadFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if lo, hi, ok := set.YearSpan(); !ok || lo != 2024 || hi != 2024 {
		t.Fatalf("YearSpan()=%d,%d,%v", lo, hi, ok)
	}

	valid, err := IsCacheValid(path, time.Now())
	if err != nil || !valid {
		t.Fatalf("fresh file should be valid, got %v %v", valid, err)
	}
	valid, err = IsCacheValid(path, time.Now().AddDate(1, 0, 0))
	if err != nil || valid {
		t.Fatalf("file older than six months should be stale, got %v %v", valid, err)
	}
	valid, err = IsCacheValid(filepath.Join(t.TempDir(), "missing.json"), time.Now())
	if err != nil || valid {
		t.Fatalf("missing file should be invalid without error, got %v %v", valid, err)
	}

	if _, err := LoadFromFile(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsAreComplete(t *testing.T) {
	d := Default()
	if d.DayLengthSeconds <= 0 {
		t.Fatal("day length must be positive")
	}
	if d.Needs.HungerDecayPerHour <= 0 || d.Needs.FulfillAmount <= 0 {
		t.Fatal("need tuning missing")
	}
	if d.Economy.FoodBasePrice <= 0 {
		t.Fatal("economy tuning missing")
	}
	if d.Goals.ReassignDelayMax < d.Goals.ReassignDelayMin {
		t.Fatal("goal reassign window inverted")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	raw := []byte("day_length_seconds: 120\nneeds:\n  hunger_decay_per_hour: 6\n")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DayLengthSeconds != 120 {
		t.Fatalf("day length = %v, want overridden 120", got.DayLengthSeconds)
	}
	if got.Needs.HungerDecayPerHour != 6 {
		t.Fatalf("hunger decay = %v, want overridden 6", got.Needs.HungerDecayPerHour)
	}
	// Untouched fields keep their defaults.
	if got.Needs.CriticalThreshold != 20 {
		t.Fatalf("critical threshold = %v, want default 20", got.Needs.CriticalThreshold)
	}
	if got.Economy.InitialFood != 100 {
		t.Fatalf("initial food = %v, want default 100", got.Economy.InitialFood)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestLoadMalformedYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("day_length_seconds: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

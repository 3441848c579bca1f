package persistence

import (
	"path/filepath"
	"testing"

	"github.com/bucephalus26/sustainable-village-sim/internal/economy"
	"github.com/bucephalus26/sustainable-village-sim/internal/events"
	"github.com/bucephalus26/sustainable-village-sim/internal/sim"
	"github.com/bucephalus26/sustainable-village-sim/internal/tuning"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "village.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestWorld(t *testing.T) *sim.World {
	t.Helper()
	cfg := tuning.Default()
	w := sim.NewWorld(&cfg, 3)
	if err := w.Populate(4); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	return w
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveMeta("last_day", "7"); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}
	got, err := db.GetMeta("last_day")
	if err != nil {
		t.Fatalf("GetMeta: %v", err)
	}
	if got != "7" {
		t.Fatalf("meta = %q, want 7", got)
	}

	if err := db.SaveMeta("last_day", "8"); err != nil {
		t.Fatalf("SaveMeta overwrite: %v", err)
	}
	got, _ = db.GetMeta("last_day")
	if got != "8" {
		t.Fatalf("meta = %q, want overwritten 8", got)
	}
}

func TestSaveWorldState(t *testing.T) {
	db := openTestDB(t)
	w := newTestWorld(t)
	rec := NewRecorder(w.Bus, w.Clock)

	// Generate some activity worth persisting.
	for i := 0; i < 20; i++ {
		w.Tick(1)
	}

	if err := db.SaveWorldState(w, rec); err != nil {
		t.Fatalf("SaveWorldState: %v", err)
	}

	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM villagers"); err != nil {
		t.Fatalf("count villagers: %v", err)
	}
	if count != len(w.Villagers) {
		t.Fatalf("saved villagers = %d, want %d", count, len(w.Villagers))
	}

	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM economy_history"); err != nil {
		t.Fatalf("count economy rows: %v", err)
	}
	if count != len(economy.StockedResources) {
		t.Fatalf("economy rows = %d, want %d", count, len(economy.StockedResources))
	}

	if rec.Pending() != 0 {
		t.Fatalf("recorder still holds %d events after save", rec.Pending())
	}
}

func TestDayRolloverSaveDrainsRecorder(t *testing.T) {
	db := openTestDB(t)
	w := newTestWorld(t)
	rec := NewRecorder(w.Bus, w.Clock)

	saves := 0
	w.Bus.Subscribe(events.KindDayChanged, func(events.Event) {
		saves++
		if err := db.SaveWorldState(w, rec); err != nil {
			t.Fatalf("daily save: %v", err)
		}
	})

	// Day length is 300s and the clock starts at hour 6, so the first
	// rollover lands 225s in.
	for i := 0; i < 4; i++ {
		w.Tick(60)
	}

	if saves != 1 {
		t.Fatalf("daily saves = %d, want 1", saves)
	}
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM villagers"); err != nil {
		t.Fatalf("count villagers: %v", err)
	}
	if count != len(w.Villagers) {
		t.Fatalf("saved villagers = %d, want %d", count, len(w.Villagers))
	}
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM events"); err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count == 0 {
		t.Fatal("no events persisted by the daily save")
	}
}

func TestSaveVillagersIsFullReplace(t *testing.T) {
	db := openTestDB(t)
	w := newTestWorld(t)

	if err := db.SaveVillagers(w.Villagers); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := db.SaveVillagers(w.Villagers); err != nil {
		t.Fatalf("second save: %v", err)
	}

	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM villagers"); err != nil {
		t.Fatal(err)
	}
	if count != len(w.Villagers) {
		t.Fatalf("villagers = %d after resave, want %d", count, len(w.Villagers))
	}
}

func TestRecorderCapturesAndDrains(t *testing.T) {
	w := newTestWorld(t)
	rec := NewRecorder(w.Bus, w.Clock)

	w.Bus.Publish(events.DayChanged{Day: 2})
	w.Bus.Publish(events.PriceChanged{Resource: "Food", Old: 1, New: 1.2})

	if rec.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", rec.Pending())
	}
	records := rec.Drain()
	if len(records) != 2 {
		t.Fatalf("drained = %d, want 2", len(records))
	}
	if records[0].Kind != "day_changed" {
		t.Fatalf("kind = %q, want day_changed", records[0].Kind)
	}
	if rec.Pending() != 0 {
		t.Fatal("drain did not clear the buffer")
	}
}

func TestRecentEvents(t *testing.T) {
	db := openTestDB(t)
	records := []EventRecord{
		{Day: 1, Hour: 8, Kind: "work_completed", Payload: "{}"},
		{Day: 1, Hour: 9, Kind: "price_changed", Payload: "{}"},
		{Day: 2, Hour: 7, Kind: "day_changed", Payload: "{}"},
	}
	if err := db.SaveEvents(records); err != nil {
		t.Fatalf("SaveEvents: %v", err)
	}

	got, err := db.RecentEvents(2)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("recent = %d, want 2", len(got))
	}
	// Newest first.
	if got[0].Kind != "day_changed" {
		t.Fatalf("newest = %q, want day_changed", got[0].Kind)
	}
}

// Package persistence stores simulation snapshots and the event log in
// SQLite.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/bucephalus26/sustainable-village-sim/internal/economy"
	"github.com/bucephalus26/sustainable-village-sim/internal/sim"
	"github.com/bucephalus26/sustainable-village-sim/internal/villager"
)

// DB wraps a SQLite connection for village state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS villagers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		profession TEXT NOT NULL,
		wealth REAL NOT NULL,
		happiness REAL NOT NULL,
		mood TEXT NOT NULL,
		state TEXT NOT NULL,
		personality_json TEXT NOT NULL,
		needs_json TEXT NOT NULL,
		goals_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS economy_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day INTEGER NOT NULL,
		resource TEXT NOT NULL,
		amount REAL NOT NULL,
		price REAL NOT NULL,
		net_change REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day INTEGER NOT NULL,
		hour REAL NOT NULL,
		kind TEXT NOT NULL,
		payload TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS village_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_day ON events(day);
	CREATE INDEX IF NOT EXISTS idx_economy_day ON economy_history(day);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveVillagers writes all villagers to the database (full replace).
func (db *DB) SaveVillagers(villagers []*villager.Villager) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM villagers"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO villagers
		(id, name, profession, wealth, happiness, mood, state,
		 personality_json, needs_json, goals_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, v := range villagers {
		personalityJSON, _ := json.Marshal(v.Personality)
		needsJSON, _ := json.Marshal(needSnapshot(v))
		goalsJSON, _ := json.Marshal(goalSnapshot(v))

		_, err := stmt.Exec(
			v.ID.String(), v.Name, v.Profession.Spec.Kind.String(),
			v.Wealth, v.Mood.Happiness, v.Mood.Category().String(),
			v.Brain.Current().Type().String(),
			string(personalityJSON), string(needsJSON), string(goalsJSON),
		)
		if err != nil {
			return fmt.Errorf("insert villager %s: %w", v.Name, err)
		}
	}

	return tx.Commit()
}

func needSnapshot(v *villager.Villager) map[string]float64 {
	out := make(map[string]float64)
	for _, n := range v.Needs.All() {
		out[n.Kind.String()] = n.Current
	}
	return out
}

type goalRow struct {
	Kind     string  `json:"kind"`
	Progress float64 `json:"progress"`
	Target   float64 `json:"target"`
	Done     bool    `json:"done"`
}

func goalSnapshot(v *villager.Villager) []goalRow {
	var out []goalRow
	for _, g := range v.Goals.Active {
		out = append(out, goalRow{g.Kind.String(), g.Progress, g.Target, false})
	}
	for _, g := range v.Goals.Completed {
		out = append(out, goalRow{g.Kind.String(), g.Progress, g.Target, true})
	}
	return out
}

// SaveEconomy appends one row per stocked resource for the given day.
func (db *DB) SaveEconomy(day int, ledger *economy.Ledger) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range economy.StockedResources {
		_, err := tx.Exec(`INSERT INTO economy_history
			(day, resource, amount, price, net_change) VALUES (?, ?, ?, ?, ?)`,
			day, t.String(), ledger.Amount(t), ledger.Price(t), ledger.DailyNetChange(t),
		)
		if err != nil {
			return fmt.Errorf("insert economy row %s: %w", t.String(), err)
		}
	}

	return tx.Commit()
}

// SaveEvents appends recorded events to the database.
func (db *DB) SaveEvents(records []EventRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range records {
		_, err := tx.Exec(
			"INSERT INTO events (day, hour, kind, payload) VALUES (?, ?, ?, ?)",
			r.Day, r.Hour, r.Kind, r.Payload,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in village metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO village_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM village_meta WHERE key = ?", key)
	return value, err
}

// SaveWorldState performs a full save: villagers, economy, pending
// events, and the current day.
func (db *DB) SaveWorldState(w *sim.World, rec *Recorder) error {
	slog.Info("saving village state", "villagers", len(w.Villagers), "day", w.Clock.Day())

	if err := db.SaveVillagers(w.Villagers); err != nil {
		return fmt.Errorf("save villagers: %w", err)
	}
	if err := db.SaveEconomy(w.Clock.Day(), w.Ledger); err != nil {
		return fmt.Errorf("save economy: %w", err)
	}
	if rec != nil {
		if err := db.SaveEvents(rec.Drain()); err != nil {
			return fmt.Errorf("save events: %w", err)
		}
	}
	if err := db.SaveMeta("last_day", fmt.Sprintf("%d", w.Clock.Day())); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Info("village state saved")
	return nil
}

// RecentEvents returns the most recent N recorded events.
func (db *DB) RecentEvents(limit int) ([]EventRecord, error) {
	var records []EventRecord
	err := db.conn.Select(&records,
		"SELECT day, hour, kind, payload FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return records, err
}

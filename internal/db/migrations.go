package db

import (
	"fmt"
)

type migration struct {
	version int
	sql     string
}

// Money columns hold decimal strings so no precision is lost to REAL
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE employees (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    forename TEXT NOT NULL,
    surname TEXT NOT NULL,
    employment_start_date TEXT NOT NULL,
    pay_frequency TEXT NOT NULL CHECK (pay_frequency IN ('annual', 'weekly', 'hourly')),
    rate_of_pay TEXT NOT NULL,
    sick_pay_scheme TEXT NOT NULL CHECK (sick_pay_scheme IN ('ssp', 'cosp')),
    deductions INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),
    UNIQUE (forename, surname)
);

CREATE TABLE payroll_runs (
    id TEXT PRIMARY KEY,
    week_start TEXT NOT NULL,
    employee_count INTEGER NOT NULL,
    total TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE timesheets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    employee_id INTEGER NOT NULL REFERENCES employees(id),
    run_id TEXT REFERENCES payroll_runs(id),
    week_start TEXT NOT NULL,
    hours INTEGER NOT NULL CHECK (hours >= 0),
    minutes INTEGER NOT NULL CHECK (minutes >= 0),
    sick_days INTEGER NOT NULL CHECK (sick_days >= 0),
    labour_cost TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX idx_timesheets_week ON timesheets(week_start);
CREATE INDEX idx_timesheets_employee ON timesheets(employee_id);
CREATE INDEX idx_timesheets_run ON timesheets(run_id);
`,
	},
}

// RunMigrations applies all pending database migrations
func (db *DB) RunMigrations() error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		if _, err := tx.Exec(m.sql); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", m.version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migrations: %w", err)
	}

	return nil
}

// SchemaVersion returns the highest applied migration
func (db *DB) SchemaVersion() (int, error) {
	var version int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

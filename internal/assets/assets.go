// Package assets implements the maintenance tracker: vehicles and equipment
// with recurring service tasks and a log of completed services. Due dates are
// derived, never stored.
package assets

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Asset is one tracked vehicle or piece of equipment.
type Asset struct {
	ID   int64
	Name string
	Kind string
	// UsageUnit labels the usage meter (miles, hours, batches). Empty for
	// assets serviced on time alone.
	UsageUnit string
}

// Task is a recurring service item for an asset. Either interval may be zero,
// meaning that dimension does not apply.
type Task struct {
	ID            int64
	AssetID       int64
	Name          string
	IntervalDays  int
	IntervalUsage float64
}

// Entry records one completed service.
type Entry struct {
	ID      int64
	AssetID int64
	TaskID  int64
	DoneAt  time.Time
	Usage   float64
	Notes   string
}

// TaskStatus is the derived due state of one task.
type TaskStatus struct {
	Task     Task
	LastDone *Entry
	// DueAt is the next due date, zero when no day interval applies or the
	// task has never been done.
	DueAt time.Time
	// DueUsage is the usage reading at which service is next due, 0 when no
	// usage interval applies or the task has never been done.
	DueUsage float64
	Overdue  bool
}

// NextDue derives a task's due state from its most recent entry. A task with
// no history is due immediately (overdue from day one would nag about brand
// new gear, so it is reported as due-now, not overdue).
func NextDue(task Task, last *Entry, now time.Time, currentUsage float64) TaskStatus {
	st := TaskStatus{Task: task, LastDone: last}
	if last == nil {
		return st
	}

	if task.IntervalDays > 0 {
		st.DueAt = last.DoneAt.AddDate(0, 0, task.IntervalDays)
		if now.After(st.DueAt) {
			st.Overdue = true
		}
	}
	if task.IntervalUsage > 0 {
		st.DueUsage = last.Usage + task.IntervalUsage
		if currentUsage > st.DueUsage {
			st.Overdue = true
		}
	}
	return st
}

// Store persists assets, tasks, and service entries in SQLite.
type Store struct {
	DB *sql.DB
}

// ListAssets returns all assets, newest first.
func (s *Store) ListAssets() ([]Asset, error) {
	rows, err := s.DB.Query(`
		SELECT id, name, kind, COALESCE(usage_unit, '')
		FROM assets
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query assets: %w", err)
	}
	defer rows.Close()

	assets := make([]Asset, 0)
	for rows.Next() {
		var a Asset
		if err := rows.Scan(&a.ID, &a.Name, &a.Kind, &a.UsageUnit); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assets: %w", err)
	}
	return assets, nil
}

// CreateAsset inserts an asset and returns it with its id.
func (s *Store) CreateAsset(a Asset) (Asset, error) {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return Asset{}, fmt.Errorf("asset name is required")
	}

	res, err := s.DB.Exec(`
		INSERT INTO assets (name, kind, usage_unit)
		VALUES (?, ?, ?)
	`, a.Name, a.Kind, a.UsageUnit)
	if err != nil {
		return Asset{}, fmt.Errorf("insert asset: %w", err)
	}

	a.ID, err = res.LastInsertId()
	if err != nil {
		return Asset{}, fmt.Errorf("read asset id: %w", err)
	}
	return a, nil
}

// CreateTask inserts a recurring service task for an asset.
func (s *Store) CreateTask(t Task) (Task, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return Task{}, fmt.Errorf("task name is required")
	}
	if t.IntervalDays <= 0 && t.IntervalUsage <= 0 {
		return Task{}, fmt.Errorf("task needs a day or usage interval")
	}

	res, err := s.DB.Exec(`
		INSERT INTO asset_tasks (asset_id, name, interval_days, interval_usage)
		VALUES (?, ?, ?, ?)
	`, t.AssetID, t.Name, t.IntervalDays, t.IntervalUsage)
	if err != nil {
		return Task{}, fmt.Errorf("insert asset task: %w", err)
	}

	t.ID, err = res.LastInsertId()
	if err != nil {
		return Task{}, fmt.Errorf("read task id: %w", err)
	}
	return t, nil
}

// LogEntry records a completed service.
func (s *Store) LogEntry(e Entry) (Entry, error) {
	if e.DoneAt.IsZero() {
		e.DoneAt = time.Now()
	}

	res, err := s.DB.Exec(`
		INSERT INTO asset_entries (asset_id, task_id, done_at, usage, notes)
		VALUES (?, ?, ?, ?, ?)
	`, e.AssetID, e.TaskID, e.DoneAt.Format(time.RFC3339), e.Usage, e.Notes)
	if err != nil {
		return Entry{}, fmt.Errorf("insert service entry: %w", err)
	}

	e.ID, err = res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("read entry id: %w", err)
	}
	return e, nil
}

// Statuses derives the due state of every task on an asset, using the given
// current usage reading.
func (s *Store) Statuses(assetID int64, now time.Time, currentUsage float64) ([]TaskStatus, error) {
	rows, err := s.DB.Query(`
		SELECT id, asset_id, name, interval_days, interval_usage
		FROM asset_tasks
		WHERE asset_id = ?
		ORDER BY id ASC
	`, assetID)
	if err != nil {
		return nil, fmt.Errorf("query asset tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]Task, 0)
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.AssetID, &t.Name, &t.IntervalDays, &t.IntervalUsage); err != nil {
			return nil, fmt.Errorf("scan asset task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate asset tasks: %w", err)
	}

	statuses := make([]TaskStatus, 0, len(tasks))
	for _, t := range tasks {
		last, err := s.lastEntry(t)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, NextDue(t, last, now, currentUsage))
	}
	return statuses, nil
}

func (s *Store) lastEntry(t Task) (*Entry, error) {
	var e Entry
	var doneAt string
	err := s.DB.QueryRow(`
		SELECT id, asset_id, task_id, done_at, usage, COALESCE(notes, '')
		FROM asset_entries
		WHERE task_id = ?
		ORDER BY done_at DESC, id DESC
		LIMIT 1
	`, t.ID).Scan(&e.ID, &e.AssetID, &e.TaskID, &doneAt, &e.Usage, &e.Notes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last entry: %w", err)
	}

	e.DoneAt, err = time.Parse(time.RFC3339, doneAt)
	if err != nil {
		return nil, fmt.Errorf("parse entry date: %w", err)
	}
	return &e, nil
}

package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/myrjola/gymplan/internal/sqlite"
)

// SQLiteRepository stores the profile in the profile, progress_log and weight_log tables.
type SQLiteRepository struct {
	db *sqlite.Database
}

// NewSQLiteRepository returns a repository backed by db.
func NewSQLiteRepository(db *sqlite.Database) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Load reads the profile and its logs in insertion order.
func (r *SQLiteRepository) Load(ctx context.Context) (Profile, error) {
	var p Profile
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT name, age, gender, goal, training_days
		FROM profile
		WHERE id = 1`).Scan(&p.Name, &p.Age, &p.Gender, &p.Goal, &p.TrainingDays)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("query profile: %w", err)
	}

	if p.ProgressLog, err = r.progressLog(ctx); err != nil {
		return Profile{}, err
	}
	if p.WeightLog, err = r.weightLog(ctx); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (r *SQLiteRepository) progressLog(ctx context.Context) ([]LogEntry, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT logged_at, day, notes
		FROM progress_log
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query progress log: %w", err)
	}
	defer rows.Close()

	var log []LogEntry
	for rows.Next() {
		var (
			entry    LogEntry
			loggedAt string
		)
		if err = rows.Scan(&loggedAt, &entry.Day, &entry.Notes); err != nil {
			return nil, fmt.Errorf("scan progress log: %w", err)
		}
		if entry.Date, err = time.ParseInLocation(logDateLayout, loggedAt, time.Local); err != nil {
			return nil, fmt.Errorf("parse logged_at %q: %w", loggedAt, err)
		}
		log = append(log, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress log: %w", err)
	}
	return log, nil
}

func (r *SQLiteRepository) weightLog(ctx context.Context) ([]WeightEntry, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT measured_on, weight, unit
		FROM weight_log
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query weight log: %w", err)
	}
	defer rows.Close()

	var log []WeightEntry
	for rows.Next() {
		var (
			entry      WeightEntry
			measuredOn string
		)
		if err = rows.Scan(&measuredOn, &entry.Weight, &entry.Unit); err != nil {
			return nil, fmt.Errorf("scan weight log: %w", err)
		}
		if entry.Date, err = time.ParseInLocation(weightDateLayout, measuredOn, time.Local); err != nil {
			return nil, fmt.Errorf("parse measured_on %q: %w", measuredOn, err)
		}
		log = append(log, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weight log: %w", err)
	}
	return log, nil
}

// Save replaces the profile and both logs in a single transaction.
func (r *SQLiteRepository) Save(ctx context.Context, p Profile) error {
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO profile (id, name, age, gender, goal, training_days)
			VALUES (1, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				age = excluded.age,
				gender = excluded.gender,
				goal = excluded.goal,
				training_days = excluded.training_days`,
			p.Name, p.Age, string(p.Gender), p.Goal, p.TrainingDays); err != nil {
			return fmt.Errorf("upsert profile: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM progress_log"); err != nil {
			return fmt.Errorf("clear progress log: %w", err)
		}
		for _, e := range p.ProgressLog {
			if _, err := tx.ExecContext(ctx, "INSERT INTO progress_log (logged_at, day, notes) VALUES (?, ?, ?)",
				e.Date.Format(logDateLayout), e.Day, e.Notes); err != nil {
				return fmt.Errorf("insert progress log entry: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM weight_log"); err != nil {
			return fmt.Errorf("clear weight log: %w", err)
		}
		for _, e := range p.WeightLog {
			if _, err := tx.ExecContext(ctx, "INSERT INTO weight_log (measured_on, weight, unit) VALUES (?, ?, ?)",
				e.Date.Format(weightDateLayout), e.Weight, string(e.Unit)); err != nil {
				return fmt.Errorf("insert weight log entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

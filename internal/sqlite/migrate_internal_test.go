package sqlite

import (
	"log/slog"
	"testing"

	"github.com/myrjola/gymplan/internal/testhelpers"
)

func TestDatabase_migrateTo(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		definitions []string
		queries     []string
		wantErr     bool
	}{
		{
			name:        "empty schema",
			definitions: []string{""},
			queries:     []string{"SELECT * FROM sqlite_schema"},
			wantErr:     false,
		},
		{
			name:        "create table",
			definitions: []string{"CREATE TABLE weight_log (id INTEGER PRIMARY KEY, weight REAL)"},
			queries:     []string{"INSERT INTO weight_log (weight) VALUES (70.5)", "SELECT * FROM weight_log"},
			wantErr:     false,
		},
		{
			name: "drop table",
			definitions: []string{
				"CREATE TABLE weight_log (id INTEGER PRIMARY KEY, weight REAL)",
				"",
			},
			queries: []string{"INSERT INTO weight_log (weight) VALUES (70.5)"},
			wantErr: true,
		},
		{
			name: "add column",
			definitions: []string{
				"CREATE TABLE weight_log (id INTEGER PRIMARY KEY, weight REAL)",
				"CREATE TABLE weight_log (id INTEGER PRIMARY KEY, weight REAL, unit TEXT NOT NULL DEFAULT 'kg')",
			},
			queries: []string{"INSERT INTO weight_log (weight, unit) VALUES (150, 'lbs')"},
			wantErr: false,
		},
		{
			name: "remove column",
			definitions: []string{
				"CREATE TABLE weight_log (id INTEGER PRIMARY KEY)",
				"CREATE TABLE weight_log (id INTEGER PRIMARY KEY, unit TEXT)",
				"CREATE TABLE weight_log (id INTEGER PRIMARY KEY)",
			},
			queries: []string{"INSERT INTO weight_log (unit) VALUES ('kg')"},
			wantErr: true,
		},
		{
			name: "create index",
			definitions: []string{
				"CREATE TABLE progress_log (id INTEGER PRIMARY KEY, day INTEGER); CREATE INDEX day_idx ON progress_log (day)",
			},
			queries: []string{"DROP INDEX day_idx"},
			wantErr: false,
		},
		{
			name: "drop index",
			definitions: []string{
				"CREATE TABLE progress_log (id INTEGER PRIMARY KEY, day INTEGER); CREATE INDEX day_idx ON progress_log (day)",
				"CREATE TABLE progress_log (id INTEGER PRIMARY KEY, day INTEGER)",
			},
			queries: []string{"DROP INDEX day_idx"},
			wantErr: true,
		},
		{
			name: "index survives table rebuild",
			definitions: []string{
				"CREATE TABLE progress_log (id INTEGER PRIMARY KEY, day INTEGER); CREATE INDEX day_idx ON progress_log (day)",
				"CREATE TABLE progress_log (id INTEGER PRIMARY KEY, day INTEGER, notes TEXT); " +
					"CREATE INDEX day_idx ON progress_log (day)",
			},
			queries: []string{"DROP INDEX day_idx"},
			wantErr: false,
		},
		{
			name: "create trigger",
			definitions: []string{
				`CREATE TABLE progress_log (id INTEGER PRIMARY KEY, day INTEGER);
                 CREATE TRIGGER no_insert AFTER INSERT ON progress_log BEGIN SELECT RAISE (FAIL, 'fail'); END;`,
			},
			queries: []string{"INSERT INTO progress_log (day) VALUES (1)"},
			wantErr: true,
		},
		{
			name: "update trigger",
			definitions: []string{
				`CREATE TABLE progress_log (id INTEGER PRIMARY KEY, day INTEGER);
                 CREATE TRIGGER no_insert AFTER INSERT ON progress_log BEGIN SELECT RAISE (FAIL, 'fail'); END;`,
				`CREATE TABLE progress_log (id INTEGER PRIMARY KEY, day INTEGER);
                 CREATE TRIGGER no_insert AFTER INSERT ON progress_log BEGIN SELECT 1; END;`,
			},
			queries: []string{"INSERT INTO progress_log (day) VALUES (1)"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := t.Context()
			logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
			db, err := connect(ctx, ":memory:", logger)
			if err != nil {
				t.Fatalf("connect() error = %v", err)
			}
			t.Cleanup(func() {
				if err = db.Close(); err != nil {
					t.Errorf("Close() error = %v", err)
				}
			})

			for _, definition := range tt.definitions {
				if err = db.migrateTo(ctx, definition); err != nil {
					t.Fatalf("migrateTo() error = %v", err)
				}
			}

			var failed bool
			for _, query := range tt.queries {
				logger.LogAttrs(ctx, slog.LevelInfo, "executing", slog.String("query", query))
				if _, err = db.ReadWrite.ExecContext(ctx, query); err != nil {
					failed = true
					if !tt.wantErr {
						t.Errorf("query %q error = %v", query, err)
					}
				}
			}
			if tt.wantErr && !failed {
				t.Errorf("queries %q succeeded, want error", tt.queries)
			}
		})
	}
}

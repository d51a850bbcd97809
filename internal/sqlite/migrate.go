package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// objectKind is the sqlite_schema type of a schema object.
type objectKind string

const (
	kindTable   objectKind = "table"
	kindIndex   objectKind = "index"
	kindTrigger objectKind = "trigger"
)

// schemaObject is a row of sqlite_schema present in the live database, the target schema or both.
type schemaObject struct {
	name      string
	liveSQL   string
	targetSQL string
}

// migrateTo makes the live schema match schemaDefinition declaratively.
//
// The target schema is created in an attached in-memory database and compared against the live sqlite_schema:
// removed objects are dropped, new objects created and changed tables rebuilt following
// https://www.sqlite.org/lang_altertable.html#otheralter. Indexes and triggers are recreated when their SQL differs.
func (db *Database) migrateTo(ctx context.Context, definition string) (err error) {
	start := time.Now()

	detach, err := db.attachTarget(ctx, definition)
	if err != nil {
		return fmt.Errorf("attach target schema: %w", err)
	}
	defer detach()

	if _, err = db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("disable foreign keys: %w", err)
	}
	defer func() {
		if _, fkErr := db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = ON"); fkErr != nil {
			err = errors.Join(err, fmt.Errorf("enable foreign keys: %w", fkErr))
		}
	}()

	err = db.WithTx(ctx, func(tx *sql.Tx) error {
		m := migration{tx: tx, logger: db.logger}
		if txErr := m.syncTables(ctx); txErr != nil {
			return fmt.Errorf("tables: %w", txErr)
		}
		for _, kind := range []objectKind{kindIndex, kindTrigger} {
			if txErr := m.syncObjects(ctx, kind); txErr != nil {
				return fmt.Errorf("%ss: %w", kind, txErr)
			}
		}
		if _, txErr := tx.ExecContext(ctx, "PRAGMA foreign_key_check"); txErr != nil {
			return fmt.Errorf("foreign key check: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	db.logger.LogAttrs(ctx, slog.LevelDebug, "migrated database", slog.Duration("duration", time.Since(start)))
	return nil
}

// attachTarget creates the target schema in a fresh in-memory database, attaches it as "target" and returns
// the function that detaches it again.
func (db *Database) attachTarget(ctx context.Context, definition string) (func(), error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", rand.Text())
	target, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open target database: %w", err)
	}
	// The shared cache keeps the in-memory database alive while the live connection has it attached.
	defer func() {
		if closeErr := target.Close(); closeErr != nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to close target database", slog.Any("error", closeErr))
		}
	}()
	if _, err = target.ExecContext(ctx, definition); err != nil {
		return nil, fmt.Errorf("create target schema: %w", err)
	}
	if _, err = db.ReadWrite.ExecContext(ctx, "ATTACH DATABASE ? AS target", dsn); err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	return func() {
		if _, detachErr := db.ReadWrite.ExecContext(ctx, "DETACH DATABASE target"); detachErr != nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to detach target database", slog.Any("error", detachErr))
		}
	}, nil
}

type migration struct {
	tx     *sql.Tx
	logger *slog.Logger
}

func (m migration) exec(ctx context.Context, query string) error {
	m.logger.LogAttrs(ctx, slog.LevelInfo, "migrating schema", slog.String("query", query))
	if _, err := m.tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("exec %q: %w", query, err)
	}
	return nil
}

// objects lists schema objects of kind. The rename during a table rebuild quotes the table name, so quotes are
// ignored when comparing table SQL.
func (m migration) objects(ctx context.Context, kind objectKind) ([]schemaObject, error) {
	rows, err := m.tx.QueryContext(ctx, `
SELECT name, COALESCE(MAX(live_sql), ''), COALESCE(MAX(target_sql), '')
FROM (SELECT name, sql AS live_sql, NULL AS target_sql
      FROM main.sqlite_schema
      WHERE type = :kind AND sql IS NOT NULL
      UNION ALL
      SELECT name, NULL, sql
      FROM target.sqlite_schema
      WHERE type = :kind AND sql IS NOT NULL)
WHERE name NOT LIKE 'sqlite_%'
GROUP BY name
ORDER BY name`, sql.Named("kind", string(kind)))
	if err != nil {
		return nil, fmt.Errorf("query %s objects: %w", kind, err)
	}
	defer rows.Close()

	var objects []schemaObject
	for rows.Next() {
		var o schemaObject
		if err = rows.Scan(&o.name, &o.liveSQL, &o.targetSQL); err != nil {
			return nil, fmt.Errorf("scan %s object: %w", kind, err)
		}
		objects = append(objects, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s objects: %w", kind, err)
	}
	return objects, nil
}

func (o schemaObject) changed() bool {
	return strings.ReplaceAll(o.liveSQL, `"`, "") != strings.ReplaceAll(o.targetSQL, `"`, "")
}

func (m migration) syncTables(ctx context.Context) error {
	tables, err := m.objects(ctx, kindTable)
	if err != nil {
		return err
	}
	for _, table := range tables {
		switch {
		case table.targetSQL == "":
			err = m.exec(ctx, "DROP TABLE "+table.name)
		case table.liveSQL == "":
			err = m.exec(ctx, table.targetSQL)
		case table.changed():
			err = m.rebuildTable(ctx, table)
		}
		if err != nil {
			return fmt.Errorf("table %s: %w", table.name, err)
		}
	}
	return nil
}

// rebuildTable creates the table with the new definition under a temporary name, copies the columns both
// definitions share and swaps the tables.
func (m migration) rebuildTable(ctx context.Context, table schemaObject) error {
	tempName := table.name + "_migration_temp"
	if err := m.exec(ctx, strings.Replace(table.targetSQL, table.name, tempName, 1)); err != nil {
		return err
	}

	columns, err := m.commonColumns(ctx, table.name)
	if err != nil {
		return err
	}
	if len(columns) > 0 {
		list := strings.Join(columns, ", ")
		if err = m.exec(ctx, fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s", tempName, list, list, table.name)); err != nil {
			return err
		}
	}

	if err = m.exec(ctx, "DROP TABLE "+table.name); err != nil {
		return err
	}
	return m.exec(ctx, fmt.Sprintf("ALTER TABLE %s RENAME TO %s", tempName, table.name))
}

func (m migration) commonColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := m.tx.QueryContext(ctx, `
SELECT '"' || t.name || '"'
FROM PRAGMA_TABLE_INFO(:table) AS live
         JOIN PRAGMA_TABLE_INFO(:table, 'target') AS t ON t.name = live.name`, sql.Named("table", table))
	if err != nil {
		return nil, fmt.Errorf("query common columns: %w", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var column string
		if err = rows.Scan(&column); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		columns = append(columns, column)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}
	return columns, nil
}

// syncObjects drops, creates or recreates the indexes or triggers whose SQL differs from the target.
func (m migration) syncObjects(ctx context.Context, kind objectKind) error {
	objects, err := m.objects(ctx, kind)
	if err != nil {
		return err
	}
	drop := fmt.Sprintf("DROP %s IF EXISTS ", strings.ToUpper(string(kind)))
	for _, o := range objects {
		if o.liveSQL == o.targetSQL {
			continue
		}
		// A table rebuild drops its indexes and triggers along with the old table.
		if o.liveSQL != "" {
			if err = m.exec(ctx, drop+o.name); err != nil {
				return err
			}
		}
		if o.targetSQL != "" {
			if err = m.exec(ctx, o.targetSQL); err != nil {
				return err
			}
		}
	}
	return nil
}

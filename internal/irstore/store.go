// SPDX-License-Identifier: MPL-2.0

package irstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/apacker1/wix/internal/ir"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

const driverName = "sqlite3"

// SectionsTable is the name of the table listing sections.
const SectionsTable = "sections"

// ErrNilIntermediate is returned when there is nothing to write.
var ErrNilIntermediate = errors.New("irstore: nil intermediate")

type (
	// Store is an open intermediate database.
	Store struct {
		db  *sql.DB
		reg *ir.Registry
	}

	insert struct {
		stmt *sql.Stmt
		def  ir.TableDefinition
	}
)

// Open opens or creates the database at path and ensures one SQL table
// exists per registry table.
func Open(ctx context.Context, path string, reg *ir.Registry) (*Store, error) {
	db, err := sql.Open(driverName, path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db, reg: reg}
	if err := s.migrate(ctx); err != nil {
		db.Close() //nolint:errcheck // the migration error is the one to report
		return nil, err
	}
	return s, nil
}

// Write replaces the contents of the database at path with in.
func Write(ctx context.Context, path string, in *ir.Intermediate, reg *ir.Registry) (err error) {
	s, err := Open(ctx, path, reg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close database: %w", cerr)
		}
	}()
	return s.Replace(ctx, in)
}

// DB exposes the underlying handle for queries.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Replace deletes all rows and inserts in within one transaction.
func (s *Store) Replace(ctx context.Context, in *ir.Intermediate) error {
	if in == nil {
		return ErrNilIntermediate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, name := range s.reg.Tables() {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+quote(string(name))); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+quote(SectionsTable)); err != nil {
		return fmt.Errorf("clear sections: %w", err)
	}

	inserts := make(map[ir.TableName]insert)
	defer func() {
		for _, ins := range inserts {
			ins.stmt.Close() //nolint:errcheck // statements die with the transaction
		}
	}()

	for ordinal, sec := range in.Sections {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO "sections" (ordinal, id, kind, codepage, compilation_id) VALUES (?, ?, ?, ?, ?)`,
			ordinal, sec.ID, string(sec.Kind), sec.Codepage, sec.CompilationID)
		if err != nil {
			return fmt.Errorf("insert section %q: %w", sec.ID, err)
		}

		for pos, row := range sec.Rows {
			ins, ok := inserts[row.Table()]
			if !ok {
				def, found := s.reg.Lookup(row.Table())
				if !found {
					return fmt.Errorf("%w: %s", ir.ErrUnknownTable, row.Table())
				}
				stmt, err := tx.PrepareContext(ctx, insertSQL(def))
				if err != nil {
					return fmt.Errorf("prepare insert into %s: %w", def.Name, err)
				}
				ins = insert{stmt: stmt, def: def}
				inserts[row.Table()] = ins
			}

			args, err := ins.args(ordinal, pos, row)
			if err != nil {
				return err
			}
			if _, err := ins.stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("insert into %s: %w", row.Table(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Count returns the number of rows stored for table.
func (s *Store) Count(ctx context.Context, table ir.TableName) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quote(string(table))).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{`CREATE TABLE IF NOT EXISTS "sections" (
		ordinal INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		kind TEXT NOT NULL,
		codepage INTEGER NOT NULL,
		compilation_id TEXT NOT NULL
	)`}
	for _, name := range s.reg.Tables() {
		def, _ := s.reg.Lookup(name)
		stmts = append(stmts, createSQL(def))
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// args binds a row to its insert statement. Empty nullable text becomes NULL.
func (ins insert) args(section, pos int, row ir.Row) ([]any, error) {
	values := row.Tuple.Values()
	if len(values) != len(ins.def.Columns) {
		return nil, &ir.TupleShapeError{Table: ins.def.Name, Reason: "column count mismatch"}
	}
	args := make([]any, 0, len(values)+3)
	args = append(args, section, pos, row.Source.String())
	for i, col := range ins.def.Columns {
		v := values[i]
		if s, ok := v.(string); ok && s == "" && col.Nullable {
			v = nil
		}
		args = append(args, v)
	}
	return args, nil
}

func createSQL(def ir.TableDefinition) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(quote(string(def.Name)))
	b.WriteString(" (\n\tsection INTEGER NOT NULL REFERENCES \"sections\"(ordinal),\n\tposition INTEGER NOT NULL,\n\tsource TEXT NOT NULL")
	for _, col := range def.Columns {
		b.WriteString(",\n\t")
		b.WriteString(quote(col.Name))
		b.WriteByte(' ')
		b.WriteString(sqlType(col.Type))
		if !col.Nullable {
			b.WriteString(" NOT NULL")
		}
	}
	b.WriteString(",\n\tPRIMARY KEY (section, position)\n)")
	return b.String()
}

func insertSQL(def ir.TableDefinition) string {
	names := []string{"section", "position", "source"}
	for _, col := range def.Columns {
		names = append(names, quote(col.Name))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(string(def.Name)), strings.Join(names, ", "), placeholders)
}

func sqlType(t ir.ColumnType) string {
	switch t {
	case ir.ColumnNumber, ir.ColumnBool:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

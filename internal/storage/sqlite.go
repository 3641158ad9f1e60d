package storage

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aleksaelezovic/quadstore/pkg/quad"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteExecutor implements quad.Executor on SQLite. Ids and position
// keys are stored as INTEGER via a bit-pattern cast to int64; every
// WHERE clause is compiled from the lookup conjunction with ?
// placeholders, never interpolated.
type SQLiteExecutor struct {
	db *sql.DB
}

// OpenSQLite creates or opens a SQLite-backed executor at path. An
// empty path opens a shared in-memory database. The database is
// configured with WAL mode, a 5-second busy timeout, and a
// single-writer connection pool.
func OpenSQLite(path string) (*SQLiteExecutor, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent mutation.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteExecutor{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (e *SQLiteExecutor) Close() error {
	if e.db == nil {
		return nil
	}
	return e.db.Close()
}

const insertStmt = `INSERT OR IGNORE INTO quadruples
(quadruple_id, flavor, context, context_id, subject, subject_id, predicate, predicate_id, object, object_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func insertArgs(row quad.Row) []any {
	return []any{
		int64(row.ID), // #nosec G115 - bit-pattern cast, SQLite INTEGER is 64-bit
		int64(row.Flavor),
		row.Context, int64(row.ContextKey), // #nosec G115
		row.Subject, int64(row.SubjectKey), // #nosec G115
		row.Predicate, int64(row.PredicateKey), // #nosec G115
		row.Object, int64(row.ObjectKey), // #nosec G115
	}
}

// InsertIfAbsent stores the row unless its id is already present.
func (e *SQLiteExecutor) InsertIfAbsent(row quad.Row) (bool, error) {
	res, err := e.db.Exec(insertStmt, insertArgs(row)...)
	if err != nil {
		return false, fmt.Errorf("insert quadruple: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert quadruple: %w", err)
	}
	return n > 0, nil
}

// InsertBatchIfAbsent stores all absent rows in one transaction.
func (e *SQLiteExecutor) InsertBatchIfAbsent(rows []quad.Row) (int, error) {
	tx, err := e.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		return 0, fmt.Errorf("prepare batch insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, row := range rows {
		res, err := stmt.Exec(insertArgs(row)...)
		if err != nil {
			return 0, fmt.Errorf("batch insert quadruple: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("batch insert quadruple: %w", err)
		}
		if n > 0 {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch insert: %w", err)
	}
	return added, nil
}

// DeleteByID removes the row with the given id, if present.
func (e *SQLiteExecutor) DeleteByID(id quad.ID) error {
	_, err := e.db.Exec("DELETE FROM quadruples WHERE quadruple_id = ?", int64(id)) // #nosec G115
	if err != nil {
		return fmt.Errorf("delete quadruple: %w", err)
	}
	return nil
}

// DeleteWhere removes every row matching the conjunction.
func (e *SQLiteExecutor) DeleteWhere(lookup quad.Lookup) (int64, error) {
	where, params := compileWhere(lookup)
	res, err := e.db.Exec("DELETE FROM quadruples"+where, params...)
	if err != nil {
		return 0, fmt.Errorf("delete matching quadruples: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete matching quadruples: %w", err)
	}
	return n, nil
}

// DeleteAll removes every stored row.
func (e *SQLiteExecutor) DeleteAll() error {
	if _, err := e.db.Exec("DELETE FROM quadruples"); err != nil {
		return fmt.Errorf("delete all quadruples: %w", err)
	}
	return nil
}

// ExistsByID reports whether a row with the given id is stored.
func (e *SQLiteExecutor) ExistsByID(id quad.ID) (bool, error) {
	var one int
	err := e.db.QueryRow("SELECT 1 FROM quadruples WHERE quadruple_id = ?", int64(id)).Scan(&one) // #nosec G115
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup quadruple: %w", err)
	}
	return true, nil
}

// SelectWhere streams every row matching the conjunction. Results are
// ordered by id so repeated queries stream deterministically.
func (e *SQLiteExecutor) SelectWhere(lookup quad.Lookup) (quad.Rows, error) {
	where, params := compileWhere(lookup)
	query := "SELECT quadruple_id, flavor, context, context_id, subject, subject_id, predicate, predicate_id, object, object_id FROM quadruples" +
		where + " ORDER BY quadruple_id ASC"

	rows, err := e.db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("select quadruples: %w", err)
	}
	return &sqlRows{rows: rows}, nil
}

// compileWhere translates a lookup conjunction into a parameterized
// WHERE clause. An empty conjunction compiles to no clause at all.
func compileWhere(lookup quad.Lookup) (string, []any) {
	if len(lookup.Predicates) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(lookup.Predicates))
	params := make([]any, 0, len(lookup.Predicates))
	for _, p := range lookup.Predicates {
		clauses = append(clauses, columnFor(p.Field)+" = ?")
		params = append(params, int64(p.Key)) // #nosec G115 - bit-pattern cast matching insertArgs
	}
	return " WHERE " + strings.Join(clauses, " AND "), params
}

func columnFor(f quad.Field) string {
	switch f {
	case quad.FieldContext:
		return "context_id"
	case quad.FieldSubject:
		return "subject_id"
	case quad.FieldPredicate:
		return "predicate_id"
	case quad.FieldObject:
		return "object_id"
	case quad.FieldFlavor:
		return "flavor"
	default:
		return "quadruple_id"
	}
}

// sqlRows adapts *sql.Rows to the quad.Rows stream.
type sqlRows struct {
	rows *sql.Rows
}

func (r *sqlRows) Next() bool {
	return r.rows.Next()
}

func (r *sqlRows) Row() (quad.Row, error) {
	var (
		id, flavor                       int64
		ctxKey, subjKey, predKey, objKey int64
		ctxStr, subjStr, predStr, objStr string
	)
	err := r.rows.Scan(&id, &flavor, &ctxStr, &ctxKey, &subjStr, &subjKey, &predStr, &predKey, &objStr, &objKey)
	if err != nil {
		return quad.Row{}, fmt.Errorf("scan quadruple row: %w", err)
	}

	return quad.Row{
		ID:           quad.ID(id), // #nosec G115 - bit-pattern cast matching insertArgs
		Flavor:       quad.Flavor(flavor),
		ContextKey:   uint64(ctxKey),  // #nosec G115
		SubjectKey:   uint64(subjKey), // #nosec G115
		PredicateKey: uint64(predKey), // #nosec G115
		ObjectKey:    uint64(objKey),  // #nosec G115
		Context:      ctxStr,
		Subject:      subjStr,
		Predicate:    predStr,
		Object:       objStr,
	}, nil
}

func (r *sqlRows) Err() error {
	return r.rows.Err()
}

func (r *sqlRows) Close() error {
	return r.rows.Close()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

const defaultQueryLimit = 50

// Store is the SQLite copy of the dataset at {dir}/dataset.db. full_id is
// not a key: colliding ids are stored as separate rows in output order.
type Store struct {
	db  *sql.DB
	fts bool
}

// Open opens or creates the dataset database in dir and ensures the schema.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating dataset directory: %w", err)
	}

	dbPath := filepath.Join(dir, DBFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// FullText reports whether the FTS5 index is available. Without it Query
// falls back to substring matching.
func (s *Store) FullText() bool {
	return s.fts
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			ordinal INTEGER NOT NULL,
			full_id TEXT NOT NULL,
			homework TEXT NOT NULL,
			exercise_number TEXT NOT NULL,
			sub_problem TEXT,
			content TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_full_id ON records(full_id)`,
		`CREATE INDEX IF NOT EXISTS idx_records_homework ON records(homework)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='records_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		s.fts = true
		return nil
	}

	// FTS5 is only compiled in with the sqlite_fts5 build tag.
	ftsStatements := []string{
		`CREATE VIRTUAL TABLE records_fts USING fts5(content, content=records, content_rowid=rowid)`,
		`CREATE TRIGGER records_ai AFTER INSERT ON records BEGIN
			INSERT INTO records_fts(rowid, content) VALUES (new.rowid, new.content);
		END`,
		`CREATE TRIGGER records_ad AFTER DELETE ON records BEGIN
			INSERT INTO records_fts(records_fts, rowid, content) VALUES('delete', old.rowid, old.content);
		END`,
	}
	if _, err := s.db.Exec(ftsStatements[0]); err != nil {
		return nil
	}
	for _, stmt := range ftsStatements[1:] {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	s.fts = true
	return nil
}

// Replace rewrites the stored dataset with records, preserving their order.
func (s *Store) Replace(ctx context.Context, records []types.ExerciseRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("deleting old records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (ordinal, full_id, homework, exercise_number, sub_problem, content)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		var sub sql.NullString
		if r.SubProblem != nil {
			sub = sql.NullString{String: *r.SubProblem, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, r.FullID, r.Homework, r.ExerciseNumber, sub, r.Content); err != nil {
			return fmt.Errorf("inserting record %s: %w", r.FullID, err)
		}
	}

	return tx.Commit()
}

// QueryOptions filters records. Empty fields do not filter.
type QueryOptions struct {
	// Query is a full-text search string.
	Query string

	// Homework filters by homework label, e.g. "hw3".
	Homework string

	// Exercise filters by exercise number.
	Exercise string

	// SubProblemsOnly keeps only sub-problem records.
	SubProblemsOnly bool

	// Limit caps the result count. Zero uses the default of 50; negative
	// means no limit.
	Limit int
}

// Query returns matching records in dataset order.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]types.ExerciseRecord, error) {
	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(`SELECT r.homework, r.exercise_number, r.sub_problem, r.content, r.full_id FROM records r`)
	if opts.Query != "" && s.fts {
		qb.WriteString(` JOIN records_fts ON r.rowid = records_fts.rowid WHERE records_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(` WHERE 1=1`)
		if opts.Query != "" {
			qb.WriteString(` AND r.content LIKE ?`)
			args = append(args, "%"+opts.Query+"%")
		}
	}

	if opts.Homework != "" {
		qb.WriteString(` AND r.homework = ?`)
		args = append(args, opts.Homework)
	}
	if opts.Exercise != "" {
		qb.WriteString(` AND r.exercise_number = ?`)
		args = append(args, opts.Exercise)
	}
	if opts.SubProblemsOnly {
		qb.WriteString(` AND r.sub_problem IS NOT NULL`)
	}

	qb.WriteString(` ORDER BY r.ordinal`)

	limit := opts.Limit
	if limit == 0 {
		limit = defaultQueryLimit
	}
	if limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying dataset: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Get returns every record stored under fullID. More than one record means
// the id collided during segmentation.
func (s *Store) Get(ctx context.Context, fullID string) ([]types.ExerciseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT homework, exercise_number, sub_problem, content, full_id
		 FROM records WHERE full_id = ? ORDER BY ordinal`, fullID)
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", fullID, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("record %s not found", fullID)
	}
	return records, nil
}

// All returns the full dataset in order.
func (s *Store) All(ctx context.Context) ([]types.ExerciseRecord, error) {
	return s.Query(ctx, QueryOptions{Limit: -1})
}

func scanRecords(rows *sql.Rows) ([]types.ExerciseRecord, error) {
	var records []types.ExerciseRecord
	for rows.Next() {
		var (
			r   types.ExerciseRecord
			sub sql.NullString
		)
		if err := rows.Scan(&r.Homework, &r.ExerciseNumber, &sub, &r.Content, &r.FullID); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if sub.Valid {
			v := sub.String
			r.SubProblem = &v
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Stats recomputes the dataset statistics from the stored rows. Dropped and
// SkippedFiles are not tracked by the store and stay zero.
func (s *Store) Stats(ctx context.Context) (types.DatasetStats, error) {
	var stats types.DatasetStats
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*), count(sub_problem), count(DISTINCT homework) FROM records`,
	).Scan(&stats.Total, &stats.WithSubProblems, &stats.Homeworks); err != nil {
		return stats, fmt.Errorf("counting records: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT homework, count(*) FROM records
		 GROUP BY homework
		 ORDER BY CAST(substr(homework, 3) AS INTEGER), homework`)
	if err != nil {
		return stats, fmt.Errorf("counting per homework: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var hc types.HomeworkCount
		if err := rows.Scan(&hc.Homework, &hc.Count); err != nil {
			return stats, fmt.Errorf("scanning row: %w", err)
		}
		stats.PerHomework = append(stats.PerHomework, hc)
	}
	return stats, rows.Err()
}

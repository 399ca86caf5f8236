// Package archive records transcript export runs in a local SQLite
// database so past exports can be listed later.
package archive

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

const SchemaVersion = 1

// Run is one recorded transcript export.
type Run struct {
	ID           string
	GeneratedAt  time.Time
	Formats      []string
	Theme        string
	MessageCount int
	Adapter      string
	OutputPath   string
}

// DB wraps the SQLite connection holding the run history.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens or creates the archive database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_journal_mode=WAL&_timeout=5000", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	// SQLite works best with a single writer
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	db := &DB{conn: conn, path: dbPath}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize archive schema: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

func (db *DB) initSchema() error {
	var currentVersion int
	err := db.conn.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&currentVersion)

	if err == sql.ErrNoRows || (err != nil && strings.Contains(err.Error(), "no such table: schema_version")) {
		if _, err := db.conn.Exec(schemaSQL); err != nil {
			return fmt.Errorf("failed to execute schema: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check schema version: %w", err)
	}
	if currentVersion < SchemaVersion {
		return fmt.Errorf("schema migration needed from version %d to %d (not implemented)", currentVersion, SchemaVersion)
	}
	return nil
}

// Record stores one export run and returns its generated id.
func (db *DB) Record(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	_, err := db.conn.Exec(`
		INSERT INTO runs (id, generated_at, formats, theme, message_count, adapter, output_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.GeneratedAt.UTC(), strings.Join(run.Formats, ","),
		run.Theme, run.MessageCount, run.Adapter, run.OutputPath)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return run.ID, nil
}

// List returns recorded runs, newest first. A limit of zero returns all.
func (db *DB) List(limit int) ([]Run, error) {
	query := "SELECT id, generated_at, formats, theme, message_count, adapter, output_path FROM runs ORDER BY generated_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var formats string
		var adapterName, outputPath sql.NullString
		if err := rows.Scan(&run.ID, &run.GeneratedAt, &formats, &run.Theme,
			&run.MessageCount, &adapterName, &outputPath); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if formats != "" {
			run.Formats = strings.Split(formats, ",")
		}
		run.Adapter = adapterName.String
		run.OutputPath = outputPath.String
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DefaultPath returns the default archive database path.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./transcripts.db"
	}
	return filepath.Join(home, ".transcript", "transcripts.db")
}

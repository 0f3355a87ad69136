package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Record is one completed scan as remembered between runs.
type Record struct {
	ID        int
	Target    string
	ScannedAt time.Time
	Critical  int
	High      int
	Medium    int
	Low       int
	Warnings  int
}

// Client wraps the scan history database.
type Client struct {
	DB *sql.DB
}

// Open opens the history database, creating file and schema on first use.
// An empty path selects the default location under the user's home.
func Open(path string) (*Client, error) {
	if path == "" {
		var err error
		path, err = defaultPath()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating history folder: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	table := `CREATE TABLE IF NOT EXISTS scans (
		"ID" INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
		"Target" TEXT,
		"ScannedAt" TEXT,
		"Critical" INTEGER,
		"High" INTEGER,
		"Medium" INTEGER,
		"Low" INTEGER,
		"Warnings" INTEGER);`

	if _, err := db.Exec(table); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Client{DB: db}, nil
}

func defaultPath() (string, error) {
	if runtime.GOOS == "windows" {
		dir, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "plugscandata", "history.db"), nil
	}

	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, ".plugscan", "history.db"), nil
}

// Append stores one scan outcome.
func (c *Client) Append(r *Record) error {
	sqlRow := `INSERT INTO scans
				("Target", "ScannedAt", "Critical", "High", "Medium", "Low", "Warnings")
				VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := c.DB.Exec(sqlRow, r.Target, r.ScannedAt.Format(time.RFC3339),
		r.Critical, r.High, r.Medium, r.Low, r.Warnings)

	return err
}

// Recent returns the latest scans, newest first.
func (c *Client) Recent(limit int) ([]*Record, error) {
	records := []*Record{}

	sqlRow := `SELECT * FROM scans ORDER BY ID DESC LIMIT ?`
	rows, err := c.DB.Query(sqlRow, limit)
	if err != nil {
		return records, err
	}

	defer rows.Close()

	for rows.Next() {
		r := &Record{}
		var scannedAt string

		err = rows.Scan(&r.ID, &r.Target, &scannedAt,
			&r.Critical, &r.High, &r.Medium, &r.Low, &r.Warnings)
		if err != nil {
			continue
		}

		r.ScannedAt, _ = time.Parse(time.RFC3339, scannedAt)

		records = append(records, r)
	}

	if err = rows.Err(); err != nil {
		return records, err
	}

	return records, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

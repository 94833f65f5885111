package db

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/deemkeen/noticeboard/domain"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"
)

//go:embed seed.yaml
var embeddedSeed []byte

var (
	ErrNotFound    = errors.New("announcement not found")
	ErrDuplicateId = errors.New("duplicate announcement id")
)

const (
	sqlCreateAnnouncementsTable = `CREATE TABLE IF NOT EXISTS announcements (
		id       INTEGER PRIMARY KEY,
		position INTEGER NOT NULL,
		title    TEXT NOT NULL,
		content  TEXT NOT NULL,
		priority TEXT NOT NULL,
		date     TEXT NOT NULL,
		time     TEXT NOT NULL,
		author   TEXT NOT NULL
	)`
	sqlSelectAnnouncements    = `SELECT id, title, content, priority, date, time, author FROM announcements ORDER BY position`
	sqlSelectAnnouncementById = `SELECT id, title, content, priority, date, time, author FROM announcements WHERE id = ?`
	sqlCountAnnouncements     = `SELECT COUNT(*) FROM announcements`
	sqlDeleteAnnouncements    = `DELETE FROM announcements`
	sqlInsertAnnouncement     = `INSERT INTO announcements (id, position, title, content, priority, date, time, author) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
)

// DB is the process-local announcement store. It lives in an in-memory
// sqlite database and is never written to disk.
type DB struct {
	db *sql.DB
}

var (
	dbInstance *DB
	dbOnce     sync.Once
)

// GetDB returns the shared store, seeded with the embedded announcements
func GetDB() *DB {
	dbOnce.Do(func() {
		d, err := Open()
		if err != nil {
			log.Fatalf("Failed to open announcement store: %v", err)
		}
		items, err := ParseSeed(embeddedSeed)
		if err != nil {
			log.Fatalf("Failed to parse embedded seed: %v", err)
		}
		if err := d.ReplaceAnnouncements(items); err != nil {
			log.Fatalf("Failed to seed announcement store: %v", err)
		}
		log.Printf("[DB] Seeded %d announcements", len(items))
		dbInstance = d
	})
	return dbInstance
}

// Open creates an empty in-memory store. Every call returns an independent database.
func Open() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// each connection to :memory: is its own database
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if _, err := sqlDB.Exec(sqlCreateAnnouncementsTable); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("create announcements table: %w", err)
	}
	return &DB{db: sqlDB}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// ReadAnnouncements returns all announcements in insertion order
func (d *DB) ReadAnnouncements() ([]domain.Announcement, error) {
	rows, err := d.db.Query(sqlSelectAnnouncements)
	if err != nil {
		return nil, fmt.Errorf("query announcements: %w", err)
	}
	defer rows.Close()

	items := []domain.Announcement{}
	for rows.Next() {
		var a domain.Announcement
		var priority string
		if err := rows.Scan(&a.Id, &a.Title, &a.Content, &priority, &a.Date, &a.Time, &a.Author); err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		a.Priority = domain.Priority(priority)
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate announcements: %w", err)
	}
	return items, nil
}

func (d *DB) ReadAnnouncementById(id int) (*domain.Announcement, error) {
	var a domain.Announcement
	var priority string
	err := d.db.QueryRow(sqlSelectAnnouncementById, id).
		Scan(&a.Id, &a.Title, &a.Content, &priority, &a.Date, &a.Time, &a.Author)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("read announcement %d: %w", id, err)
	}
	a.Priority = domain.Priority(priority)
	return &a, nil
}

func (d *DB) CountAnnouncements() (int, error) {
	var count int
	if err := d.db.QueryRow(sqlCountAnnouncements).Scan(&count); err != nil {
		return 0, fmt.Errorf("count announcements: %w", err)
	}
	return count, nil
}

// ReplaceAnnouncements swaps the whole set in one transaction.
// Ids must be unique; on error the previous set is kept.
func (d *DB) ReplaceAnnouncements(items []domain.Announcement) error {
	seen := make(map[int]bool, len(items))
	for _, a := range items {
		if seen[a.Id] {
			return fmt.Errorf("%w: %d", ErrDuplicateId, a.Id)
		}
		seen[a.Id] = true
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(sqlDeleteAnnouncements); err != nil {
		return fmt.Errorf("clear announcements: %w", err)
	}
	for i, a := range items {
		if _, err := tx.Exec(sqlInsertAnnouncement, a.Id, i, a.Title, a.Content, string(a.Priority), a.Date, a.Time, a.Author); err != nil {
			return fmt.Errorf("insert announcement %d: %w", a.Id, err)
		}
	}
	return tx.Commit()
}

type seedFile struct {
	Announcements []domain.Announcement `yaml:"announcements"`
}

// ParseSeed reads announcements from a YAML document with a top level
// "announcements" list
func ParseSeed(data []byte) ([]domain.Announcement, error) {
	var s seedFile
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("in seed file: %w", err)
	}
	if s.Announcements == nil {
		return []domain.Announcement{}, nil
	}
	return s.Announcements, nil
}

// LoadSeedFile replaces the store content with the announcements from path
func (d *DB) LoadSeedFile(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	items, err := ParseSeed(buf)
	if err != nil {
		return err
	}
	if err := d.ReplaceAnnouncements(items); err != nil {
		return err
	}
	log.Printf("[DB] Loaded %d announcements from %s", len(items), path)
	return nil
}

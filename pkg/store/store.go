package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrDuplicateToken indicates the token is already registered to a device.
var ErrDuplicateToken = errors.New("token already registered")

// tokenPattern matches a 32-byte secret in hex form.
var tokenPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Credential is one registered device credential.
type Credential struct {
	// Token is the derived secret in lowercase hex, 64 characters. It is
	// the primary key: the verifier looks devices up by the token they
	// present.
	Token string
	// DeviceID names the physical device the token was provisioned for.
	DeviceID string
	// Description is free-form operator text.
	Description string
	// RegisteredAt records when the credential was added.
	RegisteredAt time.Time
}

// Store provides credential table operations.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default database path following the XDG spec.
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "pufctl", "pufctl.db")
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets a verifier process read committed credentials while the
	// CLI registers new ones.
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Without a busy timeout, concurrent writes immediately return
	// SQLITE_BUSY.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate creates the schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS credentials (
		token TEXT PRIMARY KEY,
		device_id TEXT NOT NULL,
		description TEXT DEFAULT '',
		registered_at INTEGER DEFAULT (strftime('%s', 'now'))
	);
	CREATE INDEX IF NOT EXISTS idx_credentials_device ON credentials(device_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NormalizeToken lowercases a token and validates its shape.
func NormalizeToken(token string) (string, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if !tokenPattern.MatchString(token) {
		return "", fmt.Errorf("token must be 64 hex characters, got %d", len(token))
	}
	return token, nil
}

// Add registers a credential. The token must be unique: two devices sharing
// a token would be indistinguishable to the verifier.
func (s *Store) Add(cred Credential) error {
	token, err := NormalizeToken(cred.Token)
	if err != nil {
		return err
	}
	if cred.DeviceID == "" {
		return fmt.Errorf("device id must not be empty")
	}

	_, err = s.db.Exec(
		`INSERT INTO credentials (token, device_id, description, registered_at) VALUES (?, ?, ?, strftime('%s', 'now'))`,
		token, cred.DeviceID, cred.Description,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: %s...", ErrDuplicateToken, token[:8])
		}
		return fmt.Errorf("failed to add credential: %w", err)
	}
	return nil
}

// GetByToken looks a credential up by the token a device presented.
// Returns (nil, nil) when no credential matches.
func (s *Store) GetByToken(token string) (*Credential, error) {
	token, err := NormalizeToken(token)
	if err != nil {
		return nil, err
	}

	var cred Credential
	var registered int64
	err = s.db.QueryRow(
		`SELECT token, device_id, description, registered_at FROM credentials WHERE token = ?`,
		token,
	).Scan(&cred.Token, &cred.DeviceID, &cred.Description, &registered)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query credential: %w", err)
	}
	cred.RegisteredAt = time.Unix(registered, 0)
	return &cred, nil
}

// List returns all credentials ordered by registration time.
func (s *Store) List() ([]Credential, error) {
	rows, err := s.db.Query(
		`SELECT token, device_id, description, registered_at FROM credentials ORDER BY registered_at, device_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	defer rows.Close()

	var creds []Credential
	for rows.Next() {
		var cred Credential
		var registered int64
		if err := rows.Scan(&cred.Token, &cred.DeviceID, &cred.Description, &registered); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		cred.RegisteredAt = time.Unix(registered, 0)
		creds = append(creds, cred)
	}
	return creds, rows.Err()
}

// RemoveByDevice deletes every credential registered to a device and
// returns how many were removed.
func (s *Store) RemoveByDevice(deviceID string) (int, error) {
	res, err := s.db.Exec(`DELETE FROM credentials WHERE device_id = ?`, deviceID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove credentials: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

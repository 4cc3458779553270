package artifact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/disease-predictor/internal/domain"
)

// Dialect selects SQL flavour differences between the supported databases
type Dialect string

// Supported dialects
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const (
	sqliteScheme = "sqlite://"
)

var sqliteSchema = `
CREATE TABLE IF NOT EXISTS model_artifacts (
	domain TEXT PRIMARY KEY,
	format TEXT NOT NULL,
	payload BLOB NOT NULL,
	checksum TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

var postgresSchema = `
CREATE TABLE IF NOT EXISTS model_artifacts (
	domain TEXT PRIMARY KEY,
	format TEXT NOT NULL,
	payload BYTEA NOT NULL,
	checksum TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ DEFAULT now(),
	updated_at TIMESTAMPTZ DEFAULT now()
);
`

// SQLStore keeps one artifact row per domain in a model_artifacts table
type SQLStore struct {
	db       *sql.DB
	dialect  Dialect
	location string
}

// NewSQLStore wraps an existing connection
func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// IsSQLLocation reports whether a location addresses a database
func IsSQLLocation(location string) bool {
	_, _, err := parseSQLLocation(location, "")
	return err == nil
}

// parseSQLLocation splits a location into driver name and data source
func parseSQLLocation(location, baseDir string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(location, sqliteScheme):
		path := strings.TrimPrefix(location, sqliteScheme)
		if path == "" {
			return "", "", fmt.Errorf("empty sqlite path in %q", location)
		}
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		return DialectSQLite, path, nil
	case strings.HasPrefix(location, "postgres://"), strings.HasPrefix(location, "postgresql://"):
		return DialectPostgres, location, nil
	default:
		return "", "", fmt.Errorf("not a database location: %q", location)
	}
}

// OpenSQLStore connects to an existing artifact database. SQLite files must
// already exist; a missing file is reported instead of silently created.
func OpenSQLStore(ctx context.Context, location, baseDir string) (*SQLStore, error) {
	dialect, dsn, err := parseSQLLocation(location, baseDir)
	if err != nil {
		return nil, err
	}
	if dialect == DialectSQLite {
		if _, err := os.Stat(dsn); err != nil {
			return nil, fmt.Errorf("artifact database not found: %w", err)
		}
	}
	return open(ctx, dialect, dsn, location)
}

// CreateSQLStore connects to an artifact database, creating the SQLite file
// and the model_artifacts table when missing.
func CreateSQLStore(ctx context.Context, location, baseDir string) (*SQLStore, error) {
	dialect, dsn, err := parseSQLLocation(location, baseDir)
	if err != nil {
		return nil, err
	}
	if dialect == DialectSQLite {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	store, err := open(ctx, dialect, dsn, location)
	if err != nil {
		return nil, err
	}

	if dialect == DialectSQLite {
		// WAL lets readers load models while an import is writing
		if _, err := store.db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to set WAL mode: %w", err)
		}
	}

	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func open(ctx context.Context, dialect Dialect, dsn, location string) (*SQLStore, error) {
	driver := "sqlite"
	if dialect == DialectPostgres {
		driver = "pgx"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == DialectPostgres {
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLStore{db: db, dialect: dialect, location: location}, nil
}

// rebind rewrites ? placeholders into $n for postgres
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EnsureSchema creates the model_artifacts table if it doesn't exist
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	schema := sqliteSchema
	if s.dialect == DialectPostgres {
		schema = postgresSchema
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Fetch retrieves and verifies the artifact stored for a domain
func (s *SQLStore) Fetch(ctx context.Context, d domain.Domain) (*Artifact, error) {
	var format, checksum string
	var payload []byte

	err := s.db.QueryRowContext(ctx,
		s.rebind("SELECT format, payload, checksum FROM model_artifacts WHERE domain = ?"),
		string(d),
	).Scan(&format, &payload, &checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no artifact stored for %s: %w", d, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query artifact: %w", err)
	}

	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	a := &Artifact{
		Domain:   d,
		Format:   f,
		Payload:  payload,
		Checksum: checksum,
		Location: s.location,
	}
	if err := a.Verify(); err != nil {
		return nil, err
	}
	return a, nil
}

// Put stores or replaces the artifact of a domain. The checksum is computed
// when the artifact doesn't carry one.
func (s *SQLStore) Put(ctx context.Context, a *Artifact) error {
	if a.Checksum == "" {
		a.Checksum = Checksum(a.Payload)
	}
	if err := a.Verify(); err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO model_artifacts (domain, format, payload, checksum, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (domain) DO UPDATE SET
			format = excluded.format,
			payload = excluded.payload,
			checksum = excluded.checksum,
			updated_at = excluded.updated_at
	`),
		string(a.Domain),
		string(a.Format),
		a.Payload,
		a.Checksum,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to store artifact: %w", err)
	}
	return nil
}

// Domains lists the domains with a stored artifact
func (s *SQLStore) Domains(ctx context.Context) ([]domain.Domain, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT domain FROM model_artifacts ORDER BY domain")
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var result []domain.Domain
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, domain.Domain(d))
	}
	return result, rows.Err()
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

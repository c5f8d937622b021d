package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"time"

	_ "github.com/lib/pq"
)

type Settings struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN renders the settings as a postgres:// connection URL.
func (s Settings) DSN() string {
	host := s.Host
	if host == "" {
		host = "localhost"
	}
	port := s.Port
	if port == 0 {
		port = 5432
	}
	sslMode := s.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     host + ":" + strconv.Itoa(port),
		Path:     "/" + s.Database,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	if s.User != "" {
		if s.Password != "" {
			u.User = url.UserPassword(s.User, s.Password)
		} else {
			u.User = url.User(s.User)
		}
	}
	return u.String()
}

// NewDB opens the connection pool and verifies it can reach the server.
// The caller owns the pool and closes it on shutdown.
func NewDB(ctx context.Context, settings Settings) (*sql.DB, error) {
	db, err := sql.Open("postgres", settings.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if settings.MaxOpenConns > 0 {
		db.SetMaxOpenConns(settings.MaxOpenConns)
	}
	if settings.MaxIdleConns > 0 {
		db.SetMaxIdleConns(settings.MaxIdleConns)
	}
	if settings.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(settings.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

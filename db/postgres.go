package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS analysis_log (
	id           BIGSERIAL PRIMARY KEY,
	category     TEXT        NOT NULL,
	has_link     BOOLEAN     NOT NULL DEFAULT FALSE,
	has_urgency  BOOLEAN     NOT NULL DEFAULT FALSE,
	risk_default TEXT        NOT NULL,
	risk         TEXT        NOT NULL,
	urgency      TEXT        NOT NULL,
	degraded     BOOLEAN     NOT NULL DEFAULT FALSE,
	model_used   TEXT        NOT NULL DEFAULT '',
	duration_ms  BIGINT      NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS analysis_log_created_at_idx ON analysis_log (created_at);
`

func Connect(connStr string) error {
	if connStr == "" {
		return errors.New("database url is not set")
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	return DB.Ping()
}

// EnsureSchema creates the analysis log table when it does not exist.
func EnsureSchema(ctx context.Context) error {
	_, err := DB.ExecContext(ctx, schema)
	return err
}

func Ping(ctx context.Context) error {
	if DB == nil {
		return errors.New("postgres not configured")
	}
	return DB.PingContext(ctx)
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// QueryRower is satisfied by *sql.DB and *sql.Tx.
type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// HasTable reports whether table exists in the current schema. Errors read as false.
func HasTable(ctx context.Context, q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// NullIfEmpty stores optional strings as NULL.
func NullIfEmpty(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

var schema = []struct {
	table string
	ddl   string
}{
	{"cars", `
CREATE TABLE IF NOT EXISTS cars (
	id CHAR(36) NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	category ENUM('sedan','suv','luxury','vintage','other') NOT NULL DEFAULT 'sedan',
	base_price BIGINT NOT NULL DEFAULT 0,
	per_km BIGINT NOT NULL DEFAULT 0,
	image_url VARCHAR(1024) NULL,
	active TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
	UNIQUE KEY uniq_car_name (name),
	KEY idx_cars_active (active)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`},
	{"price_rules", `
CREATE TABLE IF NOT EXISTS price_rules (
	id CHAR(36) NOT NULL PRIMARY KEY,
	rule_name VARCHAR(255) NOT NULL,
	type ENUM('discount','surcharge','multiplier') NOT NULL,
	scope ENUM('srinagar','outside_srinagar','weekend','custom') NOT NULL,
	value DOUBLE NOT NULL,
	active TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
	KEY idx_rules_active_order (active, created_at, id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`},
	{"admin_users", `
CREATE TABLE IF NOT EXISTS admin_users (
	id CHAR(36) NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(50) NOT NULL DEFAULT 'admin',
	active TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_admin_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`},
}

// EnsureSchema creates any missing table. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db not available")
	}
	for _, t := range schema {
		if HasTable(ctx, db, t.table) {
			continue
		}
		if _, err := db.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.table, err)
		}
	}
	return nil
}

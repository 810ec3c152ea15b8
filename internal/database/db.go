package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// day columns are CHAR, so parseTime never touches them; loc=UTC keeps the driver consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// schema creates the four club tables.  Reservation and charge days are
// kept as text so they round-trip exactly as written.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS members (
		id         BIGINT UNSIGNED NOT NULL PRIMARY KEY,
		first_name VARCHAR(100)    NOT NULL,
		last_name  VARCHAR(100)    NOT NULL,
		phone      VARCHAR(32)     NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS items (
		id         VARCHAR(64)   NOT NULL PRIMARY KEY,
		name       VARCHAR(120)  NOT NULL,
		icon       VARCHAR(16)   NULL,
		price      DECIMAL(12,4) NOT NULL,
		category   VARCHAR(16)   NOT NULL,
		sort_order INT           NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id               CHAR(36)        NOT NULL PRIMARY KEY,
		member_id        BIGINT UNSIGNED NOT NULL,
		date             CHAR(10)        NOT NULL,
		start_slot       VARCHAR(16)     NOT NULL,
		kind             VARCHAR(16)     NOT NULL,
		diners           INT             NULL,
		member_diners    INT             NULL,
		spaces           JSON            NULL,
		kitchen_services JSON            NULL,
		light_included   BOOLEAN         NULL,
		created_at       BIGINT          NOT NULL,
		KEY idx_reservations_date (date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS charges (
		id          CHAR(36)        NOT NULL PRIMARY KEY,
		member_id   BIGINT UNSIGNED NOT NULL,
		amount      DECIMAL(12,4)   NOT NULL,
		description VARCHAR(512)    NOT NULL,
		date        VARCHAR(40)     NOT NULL,
		created_at  BIGINT          NOT NULL,
		KEY idx_charges_member (member_id, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	// tables created before prices kept four decimals
	`ALTER TABLE items MODIFY price DECIMAL(12,4) NOT NULL`,
}

// Migrate creates any missing table.  Existing tables are left as they are.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

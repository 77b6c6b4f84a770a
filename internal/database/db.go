// Package database opens the backing stores: MySQL through database/sql or
// MongoDB through the official driver.  Which one is used is decided by
// STORE_DRIVER at startup.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// OpenMySQL connects to MySQL and verifies the connection.
func OpenMySQL(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps booking dates consistent
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
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// schema creates the two tables the booking service needs.  Seats are kept
// as a JSON array so a booking stays a single row.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS movie_slots (
		id          CHAR(36)      NOT NULL PRIMARY KEY,
		title       VARCHAR(255)  NOT NULL,
		image       VARCHAR(1024) NOT NULL,
		price       DECIMAL(10,2) NOT NULL,
		show_time   VARCHAR(16)   NOT NULL,
		description TEXT          NULL,
		INDEX idx_movie_slots_show_time (show_time)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id             CHAR(36)      NOT NULL PRIMARY KEY,
		movie_title    VARCHAR(255)  NOT NULL,
		show_time      VARCHAR(16)   NOT NULL DEFAULT '',
		seats          JSON          NOT NULL,
		total_price    DECIMAL(10,2) NOT NULL,
		customer_name  VARCHAR(255)  NOT NULL,
		customer_phone VARCHAR(32)   NOT NULL,
		customer_email VARCHAR(255)  NOT NULL,
		booking_date   DATETIME(3)   NOT NULL,
		INDEX idx_bookings_date (booking_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates missing tables.  It is safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

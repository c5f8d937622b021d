package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

// LibraryTables is the minimal library schema the report views read from.
var LibraryTables = []string{
	`CREATE TABLE IF NOT EXISTS books (
		id INTEGER PRIMARY KEY,
		title VARCHAR NOT NULL,
		author VARCHAR NOT NULL,
		category VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS members (
		id INTEGER PRIMARY KEY,
		name VARCHAR NOT NULL,
		joined_at DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS copies (
		id INTEGER PRIMARY KEY,
		book_id INTEGER NOT NULL,
		status VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id INTEGER PRIMARY KEY,
		copy_id INTEGER NOT NULL,
		member_id INTEGER NOT NULL,
		loaned_at DATE NOT NULL,
		due_at DATE NOT NULL,
		returned_at DATE NULL
	)`,
	`CREATE TABLE IF NOT EXISTS fines (
		id INTEGER PRIMARY KEY,
		loan_id INTEGER NOT NULL,
		amount DOUBLE NOT NULL,
		issued_at DATE NOT NULL,
		paid_at DATE NULL
	)`,
}

// LibraryViews mirror the read-only report views of the production database.
var LibraryViews = []string{
	`CREATE OR REPLACE VIEW vw_most_borrowed_books AS
		SELECT b.title, b.author, COUNT(l.id) AS times_borrowed
		FROM books b
		JOIN copies c ON c.book_id = b.id
		JOIN loans l ON l.copy_id = c.id
		GROUP BY b.title, b.author
		ORDER BY times_borrowed DESC, b.title`,
	`CREATE OR REPLACE VIEW vw_overdue_loans AS
		SELECT m.name AS member, b.title, l.due_at,
			date_diff('day', l.due_at, current_date) AS days_overdue,
			CAST(date_diff('day', l.due_at, current_date) AS DOUBLE) * 0.5 AS estimated_fine
		FROM loans l
		JOIN members m ON m.id = l.member_id
		JOIN copies c ON c.id = l.copy_id
		JOIN books b ON b.id = c.book_id
		WHERE l.returned_at IS NULL AND l.due_at < current_date
		ORDER BY days_overdue DESC`,
	`CREATE OR REPLACE VIEW vw_fines_summary AS
		SELECT strftime(f.issued_at, '%Y-%m') AS month,
			SUM(CASE WHEN f.paid_at IS NOT NULL THEN f.amount ELSE 0 END) AS collected,
			SUM(CASE WHEN f.paid_at IS NULL THEN f.amount ELSE 0 END) AS pending
		FROM fines f
		GROUP BY month
		ORDER BY month`,
	`CREATE OR REPLACE VIEW vw_member_activity AS
		SELECT m.name, m.joined_at, COUNT(l.id) AS loans,
			CAST(SUM(CASE WHEN l.id IS NOT NULL AND (l.returned_at IS NULL OR l.returned_at > l.due_at) THEN 1 ELSE 0 END) AS BIGINT) AS late_loans,
			MAX(l.loaned_at) AS last_loan
		FROM members m
		LEFT JOIN loans l ON l.member_id = m.id
		GROUP BY m.name, m.joined_at
		ORDER BY loans DESC, m.name`,
	`CREATE OR REPLACE VIEW vw_inventory_health AS
		SELECT b.category, c.status, COUNT(*) AS copies
		FROM copies c
		JOIN books b ON b.id = c.book_id
		GROUP BY b.category, c.status
		ORDER BY b.category, c.status`,
}

var bootQueries = append(append([]string{}, LibraryTables...), LibraryViews...)

type Settings struct {
	DbPath string
}

// NewDB opens a DuckDB database carrying the library schema and report views.
func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}

package duckdb

import (
	"context"
	"database/sql"
	"fmt"
)

// SampleData is a small library with overdue loans, fines and worn copies.
var SampleData = []string{
	`INSERT INTO books VALUES
		(1, 'Clean Code', 'Robert C. Martin', 'Software'),
		(2, 'The Clean Coder', 'Robert C. Martin', 'Software'),
		(3, 'Dune', 'Frank Herbert', 'Fiction'),
		(4, 'Cien años de soledad', 'Gabriel García Márquez', 'Fiction')`,
	`INSERT INTO members VALUES
		(1, 'Ana Torres', DATE '2021-02-01'),
		(2, 'Luis Romero', DATE '2022-06-15'),
		(3, 'Marta Díaz', DATE '2023-09-30'),
		(4, 'Sofía Ruiz', DATE '2024-07-01')`,
	`INSERT INTO copies VALUES
		(1, 1, 'good'), (2, 1, 'worn'), (3, 2, 'good'),
		(4, 3, 'damaged'), (5, 4, 'good')`,
	`INSERT INTO loans VALUES
		(1, 1, 1, DATE '2024-01-02', DATE '2024-01-16', DATE '2024-01-15'),
		(2, 2, 2, DATE '2024-02-01', DATE '2024-02-15', NULL),
		(3, 3, 1, DATE '2024-03-01', DATE '2024-03-15', DATE '2024-03-20'),
		(4, 4, 3, DATE '2024-04-01', DATE '2024-04-15', NULL),
		(5, 1, 3, DATE '2024-05-01', DATE '2024-05-15', DATE '2024-05-10'),
		(6, 5, 2, DATE '2024-06-01', DATE '2024-06-15', DATE '2024-06-14')`,
	`INSERT INTO fines VALUES
		(1, 3, 2.5, DATE '2024-03-20', DATE '2024-03-21'),
		(2, 2, 10.0, DATE '2024-03-01', NULL),
		(3, 4, 7.5, DATE '2024-05-01', NULL)`,
}

// Seed loads SampleData into an empty database.
func Seed(ctx context.Context, db *sql.DB) error {
	for _, stmt := range SampleData {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("seed library data: %w", err)
		}
	}
	return nil
}

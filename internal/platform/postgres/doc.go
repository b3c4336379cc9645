// Package postgres implements the store interfaces using a PostgreSQL
// database accessed through database/sql with the pgx driver. Uniqueness
// invariants are enforced by constraints and partial indexes; constraint
// violations are mapped onto the store package's sentinel errors.
package postgres

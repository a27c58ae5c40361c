// Package postgres implements the store interfaces on top of a
// PostgreSQL database, accessed through database/sql with the pgx
// driver. It also embeds the goose schema migrations.
package postgres

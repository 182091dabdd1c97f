// Package database manages the PostgreSQL connection pool for the bar
// archive.
package database

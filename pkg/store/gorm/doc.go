// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// Every write runs in its own transaction, or joins the one opened by
// Store.Transaction. Field rules and references are checked inside that
// transaction before the statement is sent, so the same errors are reported
// on PostgreSQL and SQLite. Deletes follow the rules of the schema package.
package gorm

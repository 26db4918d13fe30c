// Package storage provides audit record persistence backends: SQLite for
// production and an in-memory store for tests.
package storage

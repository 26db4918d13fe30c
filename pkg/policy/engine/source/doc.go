// Package source provides engine.RuleSource implementations: a file-backed
// source for daemons and an in-memory source for tests and embedding.
package source

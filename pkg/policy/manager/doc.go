// Package manager keeps a running engine in sync with its rule source.
//
// It owns the reload path: a fsnotify watcher (with debouncing to absorb
// editor write storms) triggers Engine.Reload, and a rejected ruleset
// leaves the previous one serving.
package manager

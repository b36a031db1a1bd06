// Package config defines the scheduler's runtime settings and provides
// helpers to load, validate and save them in YAML format, plus a file
// watcher that re-applies changes to a running process.
package config

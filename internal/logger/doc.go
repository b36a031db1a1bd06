// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a sane console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Operational logs go to stderr so they never interleave with the
// scheduler's own event lines on stdout. Services accept a context and log
// through it, enabling scoped, structured logging throughout the codebase.
package logger

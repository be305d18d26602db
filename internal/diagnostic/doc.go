// Package diagnostic provides structured, non-fatal notices raised while
// binding view-model fields, and the sinks that receive them.
//
// Key capabilities:
//   - Diagnostics collector (errors, warnings, infos) usable as a Sink
//   - SlogSink forwarding diagnostics to a log/slog logger
//   - Call-site locations attached to diagnostics
package diagnostic

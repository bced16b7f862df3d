// Package records reshapes raw API payloads into the tabular rows the
// warehouse stores. It owns the type conversions the wire format defers:
// statistics strings to integers, RFC3339 timestamps to UTC times, and
// ISO 8601 durations to seconds.
package records

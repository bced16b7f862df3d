// Package notifications delivers harvest events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Per-event toggles let operators silence routine collect or
// warehouse messages while keeping error alerts.
//
// Extend this package if you need alternative transports; harvester code
// depends only on the simple Service interface.
package notifications

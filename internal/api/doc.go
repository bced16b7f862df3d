// Package api serves the warehouse over a small JSON HTTP surface.
//
// Endpoints cover database health, row counts, the channel listing, the
// canned analysis catalog, and analysis execution with optional channel and
// year filters. DTOs use camelCase JSON tags for JavaScript consumers and
// never expose internal warehouse types directly.
package api

// Package warehouse persists harvested channel data in SQLite.
//
// The store holds two kinds of state: the warehouse tables proper (channels,
// videos, comments) and a staging area of raw harvest snapshots. Collect
// stages a snapshot; the warehouse step reshapes it into rows and upserts
// them. Channels and videos are upserted so repeat harvests refresh counts,
// while comments are insert-only. A catalog of canned analysis queries backs
// the CLI analyze command and the dashboard API.
package warehouse

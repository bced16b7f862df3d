// Package harvester orchestrates channel harvests.
//
// A harvest has two phases. Collect pulls a channel's metadata, uploads, and
// top-level comments from the YouTube Data API and stages the raw payload as
// a snapshot. Warehouse reshapes staged snapshots into relational rows. The
// split means a transient database problem never costs API quota: staged
// snapshots can be warehoused again later. A file lock serializes harvests
// across processes sharing one data directory.
package harvester

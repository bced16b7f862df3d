// Command ytharvest harvests YouTube channel metadata into a local SQLite
// warehouse and answers canned analysis queries over it.
//
// The typical flow is:
//
//	ytharvest config init
//	ytharvest harvest <channel-id>
//	ytharvest analyze top-viewed
//
// Collect and warehouse can also run as separate steps so a database problem
// never wastes API quota. `ytharvest serve` exposes the warehouse as a JSON
// API for dashboards.
package main

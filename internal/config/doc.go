// Package config loads, normalizes, and validates ytharvest configuration.
//
// Configuration lives in a TOML file (default ~/.config/ytharvest/config.toml,
// or ./ytharvest.toml for project-local setups). Load applies defaults,
// expands ~ in paths, pulls the YouTube API key from the environment when the
// file omits it, and rejects configs that cannot work before any command runs.
package config

// Package config loads, normalizes, and validates wadmaps configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the WADMAPS_LOG_LEVEL and
// WADMAPS_CATALOG_PATH environment fallbacks. The catalog path defaults to a
// file inside the data directory so a single data_dir setting relocates
// everything the tool writes.
package config

// Package catalog persists scanned archives and their resolved map names in
// SQLite.
//
// Archives are keyed by the SHA-256 of their bytes, so the same file found at
// two paths is stored once and a rescan of unchanged content can be served
// from the catalog. Writes retry briefly when SQLite reports the database as
// busy, which happens when a watch process and a manual scan overlap.
package catalog

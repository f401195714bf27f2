// Package scan extracts map names from many archives at once.
//
// A Runner expands the requested paths into archive files, reads and hashes
// each one under a size ceiling, and resolves its names through the mapnames
// extractor on a bounded worker pool. With a catalog attached, results are
// cached by content hash and the run holds an exclusive lock so two scans
// never write the same catalog concurrently.
package scan

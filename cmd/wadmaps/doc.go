// Package main hosts the wadmaps CLI entrypoint and command graph.
//
// The Cobra-based command tree wires configuration, logging, and the catalog
// into the extraction packages: single-archive inspection (extract, lumps),
// batch scans and directory watching, catalog maintenance, and environment
// status. Heavy lifting lives in internal packages; commands here only parse
// flags and render results as tables or JSON.
package main

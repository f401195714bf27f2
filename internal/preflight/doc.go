// Package preflight provides readiness checks for the filesystem paths and
// catalog database that wadmaps depends on.
//
// The CLI "wadmaps status" command renders these results; scan and watch
// do not call them and fail on their own errors instead.
package preflight

// Package oee computes Overall Equipment Effectiveness for a coke-oven battery
// from an ingested stop log and production log.
//
// Every function in this package is a pure computation over its arguments: no
// clock reads, no I/O, and input slices and maps are never modified. Callers may
// run independent analyses of the same dataset concurrently.
package oee

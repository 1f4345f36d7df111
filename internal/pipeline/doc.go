// Package pipeline streams transcript rows through the filter predicates and
// hands survivors to a visit callback, one row at a time.
//
// The only contract to implement is Source (Read). This keeps the pipeline
// swappable and testable without CSV fixtures.
package pipeline

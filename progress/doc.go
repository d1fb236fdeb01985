// Package progress keeps the aggregated task counters of a batch run.
package progress

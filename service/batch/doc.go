// Package batch drives the run-to-completion loop: it admits tasks, asks the
// scheduler for the next dispatch, executes it and returns its capacity.
package batch

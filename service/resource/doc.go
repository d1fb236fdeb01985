// Package resource owns the authoritative capacity pool. Every reservation
// made by the scheduler and every release made by the batch runner goes
// through a single Manager, so there is exactly one view of what is free.
package resource

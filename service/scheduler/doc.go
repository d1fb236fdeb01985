// Package scheduler holds the queue of pending tasks and decides, in
// priority and resource-aware order, which one is dispatched next.
//
// The scheduler keeps no copy of the available capacity: feasibility is
// evaluated against the resource manager and the selected task's capacity is
// reserved there before it is handed out.
package scheduler

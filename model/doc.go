// Package model contains the in-memory representation of the batch kernel's
// work units and the capacity they consume.
//
// The `resource` sub-package defines the multi-dimensional Requirement that
// both tasks and the resource pool are expressed in, while `task` defines the
// Task descriptor and its Queued → Running → {Completed, Failed} state
// machine. The root model package only aggregates those building blocks.
package model

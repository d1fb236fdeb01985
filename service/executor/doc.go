// Package executor runs dispatched tasks. The work performed for a task is
// injected; Synthetic reproduces the kernel's built-in busy loop.
package executor

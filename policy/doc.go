// Package policy provides optional admission rules applied to tasks when
// they are submitted to the batch runner.
package policy

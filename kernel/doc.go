// Package kernel wires the trap dispatcher, early memory setup and the batch
// runner into the fixed boot sequence of the machine.
package kernel

// Package console defines the byte-oriented diagnostic console the kernel
// logs to, with stream and in-memory implementations.
package console

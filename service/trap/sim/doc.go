// Package sim provides a software hart used to run the kernel hosted, in
// tests and from the command line.
package sim

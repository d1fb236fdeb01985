// Package trap classifies hardware traps and routes each one to a
// deterministic handler.
//
// Everything architecture specific (reading the cause and trap-value
// registers, programming the trap vector, masking interrupt sources and
// halting) sits behind the Hart interface, so the classification and routing
// logic runs unchanged against real hardware or the simulated hart in the
// sim sub-package. Cause codes follow the RISC-V machine-mode encoding.
package trap

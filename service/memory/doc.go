// Package memory provides the kernel's early heap and address-space setup.
package memory

// Package physmem is the byte-range boundary to the shared physical
// memory region holding the OCSD buffer.
//
// The region is mutated at any time by the management controller, so
// every read and write is a real side-effecting I/O call: results are
// never cached and repeated calls with identical arguments are never
// collapsed. The torn-read detection built on top depends on that.
package physmem

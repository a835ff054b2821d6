// Package protocol owns the reverse-engineered OCSD buffer contract.
//
// Ownership boundary:
// - header/entry layout constants and value types
// - buffer encode/decode primitives
// - checksum and status flag primitives
//
// Every offset and width in this package was recovered from hardware
// captures of one tested unit. Do not extend the layout beyond what a
// capture fixture can verify.
package protocol

// Package client is the report-side façade over one OCSD buffer.
//
// The shared region has no hardware mutex and the management
// controller rewrites it on its own schedule, so the client treats
// every access as potentially torn: reads are fenced on the header's
// generation counter and writes are verified by reading back. Detected
// races are retried up to a bound, then surfaced as typed errors.
//
// The client keeps no copy of the buffer between calls. Host-side
// callers sharing one window across goroutines or processes must
// serialize their own publish sequences externally; the fencing here
// only defends against the controller.
package client

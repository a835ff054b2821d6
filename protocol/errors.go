package protocol

import "errors"

var (
	ErrBadMagic         = errors.New("protocol: bad magic")
	ErrBadVersion       = errors.New("protocol: unrecognized format version")
	ErrTruncated        = errors.New("protocol: truncated buffer")
	ErrChecksumMismatch = errors.New("protocol: checksum mismatch")
	ErrTempOutOfRange   = errors.New("protocol: temperature out of range")
)

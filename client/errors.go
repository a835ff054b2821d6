package client

import "errors"

var (
	ErrTornRead       = errors.New("client: torn read")
	ErrTornWrite      = errors.New("client: torn write")
	ErrVerifyMismatch = errors.New("client: write verify mismatch")
	ErrInvalidSlot    = errors.New("client: invalid slot")
)

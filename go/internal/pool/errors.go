package pool

import "errors"

var (
	// ErrPoolNotFound is returned when no pool exists for an id
	ErrPoolNotFound = errors.New("pool not found")

	// ErrPoolClosed is returned when registering into a pool that is no longer open
	ErrPoolClosed = errors.New("pool closed")

	// ErrIneligibleAge is returned when a birth year falls outside the pool's division range
	ErrIneligibleAge = errors.New("ineligible age")
)

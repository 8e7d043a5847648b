package sim

import "errors"

var (
	// ErrPoolExhausted is returned when an entity pool has no free handle.
	ErrPoolExhausted = errors.New("pool exhausted")
	// ErrHandleNotLive is returned when releasing a handle that is not held.
	ErrHandleNotLive = errors.New("handle not live")
	// ErrInvalidBombPlacement is returned when a bomb cannot be placed.
	ErrInvalidBombPlacement = errors.New("invalid bomb placement")
	// ErrNotEnoughPoints is returned when the score cannot cover a purchase.
	ErrNotEnoughPoints = errors.New("not enough points")
)

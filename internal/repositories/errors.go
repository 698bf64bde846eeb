package repositories

import "errors"

// Sentinel errors shared by all repository implementations. Callers match
// them with errors.Is; implementations wrap them with context.
var (
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientStock is returned by ProductRepository.DecrementStock
	// when the conditional decrement would drive stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

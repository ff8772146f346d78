package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Not-found errors. Each names the entity whose lookup or membership
// check failed; callers surface these without retrying.
var (
	ErrTableNotFound  = errors.New("table not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrRowNotFound    = errors.New("row not found")
	ErrViewNotFound   = errors.New("view not found")
)

// Validation errors. Rejected before any store access; never retried.
var (
	ErrInvalidID          = errors.New("invalid entity ID")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidColumnType  = errors.New("invalid column type")
	ErrInvalidFilter      = errors.New("invalid filter")
	ErrInvalidSort        = errors.New("invalid sort")
	ErrSortColumnNotFound = errors.New("sort column not found on table")
	ErrSortTypeMismatch   = errors.New("sort type does not match column type")
	ErrInvalidLimit       = errors.New("limit out of range")
	ErrInvalidCount       = errors.New("row count out of range")
	ErrInvalidCellValue   = errors.New("cell value must be a string, number, or null")
)

package isl

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPartition = errors.New("invalid partition")
	ErrInvalidParams    = errors.New("invalid parameters")
	ErrWorkerFault      = errors.New("worker fault")
	ErrFieldCount       = errors.New("field count mismatch")
)

// PartitionError reports a grid that cannot be divided between the requested runners.
type PartitionError struct {
	Width, Height int
	Runners       int
	Reason        string
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("%v: %dx%d grid with %d runners: %s",
		ErrInvalidPartition, e.Width, e.Height, e.Runners, e.Reason)
}

func (e *PartitionError) Unwrap() error {
	return ErrInvalidPartition
}

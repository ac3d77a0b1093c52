package isl

import (
	"errors"
	"fmt"
	"strings"
)

// OutputType selects where snapshots of a run end up.
type OutputType uint8

// It will evaluate to:
//
//	RawData = 0
//	String  = 1
//	VTK     = 2
//	CSV     = 3
//	PGM     = 4
const (
	RawData OutputType = iota // Snapshots kept in Result.Raw
	String                    // Formatted snapshots kept in Result.Strings
	VTK                       // ISL<n>.vtk structured grid files
	CSV                       // file<n> text files
	PGM                       // ISL<n>.pgm grey-scale images
)

func (t OutputType) String() string {
	switch t {
	case RawData:
		return "raw"
	case String:
		return "string"
	case VTK:
		return "vtk"
	case CSV:
		return "csv"
	case PGM:
		return "pgm"
	}
	return fmt.Sprintf("OutputType(%d)", uint8(t))
}

// ParseOutputType is the inverse of OutputType.String.
func ParseOutputType(name string) (OutputType, error) {
	for t := RawData; t <= PGM; t++ {
		if t.String() == strings.ToLower(name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown output type %q", ErrInvalidParams, name)
}

// Sink consumes snapshots taken during a run.
// Accept is called from the sampling worker with indices 0, 1, 2, ...
// and must not hold it longer than it takes to enqueue or write one snapshot.
// Snapshots are shared between sinks and must not be modified.
type Sink[T any] interface {
	Accept(index int, snapshot Snapshot[T]) error
	Close() error
}

// Result is what a run hands back to the caller.
// Raw is filled for RawData, Strings for String; file outputs leave both empty.
type Result[T any] struct {
	Type    OutputType
	Raw     []Snapshot[T]
	Strings []string
}

type rawSink[T any] struct {
	snapshots []Snapshot[T]
}

func (s *rawSink[T]) Accept(index int, snapshot Snapshot[T]) error {
	s.snapshots = append(s.snapshots, snapshot)
	return nil
}

func (s *rawSink[T]) Close() error { return nil }

type stringSink[T any] struct {
	formatted []string
}

func (s *stringSink[T]) Accept(index int, snapshot Snapshot[T]) error {
	s.formatted = append(s.formatted, Format(snapshot))
	return nil
}

func (s *stringSink[T]) Close() error { return nil }

// Format writes every cell with fmt.Sprint, joining a row with commas and ending it with a newline.
func Format[T any](snapshot Snapshot[T]) string {
	var builder strings.Builder
	for _, row := range snapshot {
		for x, value := range row {
			if x != 0 {
				builder.WriteByte(',')
			}
			builder.WriteString(fmt.Sprint(value))
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

type tee[T any] []Sink[T]

// Tee hands every snapshot to each sink in turn.
func Tee[T any](sinks ...Sink[T]) Sink[T] {
	return tee[T](sinks)
}

func (t tee[T]) Accept(index int, snapshot Snapshot[T]) error {
	for _, sink := range t {
		if err := sink.Accept(index, snapshot); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink, even when an earlier one fails
func (t tee[T]) Close() error {
	var errs []error
	for _, sink := range t {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

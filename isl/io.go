package isl

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// ioState is the internal state of the io goroutine.
type ioState struct {
	dir       string
	operation *ioOperation
	cond      *sync.Cond
	logger    *log.Logger
}

// ioCommand allows requesting behaviour from the io goroutine.
type ioCommand uint8

const (
	ioOutput ioCommand = iota
	ioQuit
)

type ioOperation struct {
	command   ioCommand
	filename  string
	data      []byte
	completed bool
	err       error
}

// writeFile writes the data of the current operation to its file in the output directory.
func (io *ioState) writeFile() error {
	file, err := os.Create(filepath.Join(io.dir, io.operation.filename))
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err = file.Write(io.operation.data); err != nil {
		return err
	}
	if err = file.Sync(); err != nil {
		return err
	}
	io.logger.Println("File", io.operation.filename, "output done!")
	return nil
}

// startIo should be the entrypoint of the io goroutine.
// The caller must hold io.cond.L, ownership of the lock is transferred to startIo.
func startIo(io *ioState) {
	for {
		for io.operation == nil || io.operation.completed {
			io.cond.Wait()
		}
		switch io.operation.command {
		case ioOutput:
			io.operation.err = io.writeFile()
		case ioQuit:
			io.operation.completed = true
			io.cond.Broadcast()
			io.cond.L.Unlock()
			return
		}
		io.operation.completed = true
		io.cond.Broadcast()
	}
}

// Initiate an IO request, the previous one must have completed
func (io *ioState) sendIoRequest(operation *ioOperation) {
	io.cond.L.Lock()
	io.operation = operation
	io.cond.Broadcast()
	io.cond.L.Unlock()
}

// Wait until last IO operation completed and take its error
func (io *ioState) waitIoRequest() error {
	io.cond.L.Lock()
	defer io.cond.L.Unlock()
	if io.operation == nil {
		return nil
	}
	for !io.operation.completed {
		io.cond.Wait()
	}
	err := io.operation.err
	io.operation.err = nil
	return err
}

// Send a signal to IO goroutine to quit and wait for it to stop
func (io *ioState) quit() {
	io.cond.L.Lock()
	for io.operation != nil && !io.operation.completed {
		io.cond.Wait()
	}
	operation := &ioOperation{command: ioQuit}
	io.operation = operation
	io.cond.Broadcast()
	for !operation.completed {
		io.cond.Wait()
	}
	io.cond.L.Unlock()
}

type encoder[T any] func(index int, snapshot Snapshot[T]) (filename string, data []byte, err error)

// fileSink encodes snapshots on the sampling worker and hands the bytes to the io goroutine.
// At most one write is in flight at a time.
type fileSink[T any] struct {
	io     *ioState
	encode encoder[T]
	once   sync.Once
}

// NewFileSink starts an io goroutine writing one file per snapshot into dir.
// output must be VTK, CSV or PGM.
func NewFileSink[T any](output OutputType, dir string, logger *log.Logger) (Sink[T], error) {
	var encode encoder[T]
	switch output {
	case VTK:
		names := FieldNames[T]()
		encode = func(index int, snapshot Snapshot[T]) (string, []byte, error) {
			data, err := encodeVTK(names, snapshot)
			return fmt.Sprintf("ISL%d.vtk", index), data, err
		}
	case CSV:
		encode = func(index int, snapshot Snapshot[T]) (string, []byte, error) {
			return fmt.Sprintf("file%d", index), []byte(Format(snapshot)), nil
		}
	case PGM:
		encode = func(index int, snapshot Snapshot[T]) (string, []byte, error) {
			data, err := encodePGM(snapshot)
			return fmt.Sprintf("ISL%d.pgm", index), data, err
		}
	default:
		return nil, fmt.Errorf("%w: %v is not a file output", ErrInvalidParams, output)
	}
	if dir == "" {
		dir = "out"
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = discard
	}
	io := &ioState{
		dir:    dir,
		cond:   sync.NewCond(new(sync.Mutex)),
		logger: logger,
	}
	io.cond.L.Lock()
	go startIo(io) // transfer ownership of lock to startIo
	return &fileSink[T]{io: io, encode: encode}, nil
}

func (s *fileSink[T]) Accept(index int, snapshot Snapshot[T]) error {
	filename, data, err := s.encode(index, snapshot)
	if err != nil {
		return err
	}
	if err := s.io.waitIoRequest(); err != nil {
		return err
	}
	s.io.sendIoRequest(&ioOperation{command: ioOutput, filename: filename, data: data})
	return nil
}

// Close waits for the last write and stops the io goroutine.
func (s *fileSink[T]) Close() error {
	var err error
	s.once.Do(func() {
		err = s.io.waitIoRequest()
		s.io.quit()
	})
	return err
}

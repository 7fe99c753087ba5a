package sink

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// File is an append-only OutputSink writing one line per tuple: the
// tuple's values separated by spaces, followed by the tag name. It is
// the CONTINUOUS MATCH "... FILE 'path'" target named in spec §6.
type File struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
	owned  bool
}

// NewFile opens (creating if absent, truncating if present) path for
// append-only writes.
func NewFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0640)
	if err != nil {
		return nil, fmt.Errorf("sink: opening %s: %w", path, err)
	}
	return &File{file: f, writer: bufio.NewWriter(f), owned: true}, nil
}

// NewFileHandle wraps an already-open file (e.g. os.Stdout) in the same
// line format NewFile uses, without taking ownership of closing it:
// Close flushes but never closes the handle.
func NewFileHandle(f *os.File) *File {
	return &File{file: f, writer: bufio.NewWriter(f)}
}

// Append writes one "v1 v2 ... vn TAG" line and flushes it.
func (f *File) Append(tag Tag, tuple []any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range tuple {
		if _, err := fmt.Fprintf(f.writer, "%v ", v); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(f.writer, tag); err != nil {
		return err
	}
	return f.writer.Flush()
}

// Close flushes and closes the underlying file.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.writer.Flush(); err != nil {
		return err
	}
	if !f.owned {
		return nil
	}
	return f.file.Close()
}

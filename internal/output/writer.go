// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package output

import (
	"fmt"
	"io"
	"os"
)

// WriterDest writes lines to a file, FIFO or terminal.
type WriterDest struct {
	w      io.Writer
	closer io.Closer
}

// NewWriterDest wraps w. Close is a no-op unless w is also an io.Closer
// other than os.Stdout/os.Stderr.
func NewWriterDest(w io.Writer) *WriterDest {
	d := &WriterDest{w: w}
	if c, ok := w.(io.Closer); ok && w != os.Stdout && w != os.Stderr {
		d.closer = c
	}
	return d
}

// OpenPath opens path for writing. Named pipes block here until a reader
// connects.
func OpenPath(path string) (*WriterDest, error) {
	switch path {
	case "", "-", "/dev/stdout":
		return NewWriterDest(os.Stdout), nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", path, err)
	}
	return NewWriterDest(f), nil
}

func (d *WriterDest) Send(line []byte) error {
	_, err := d.w.Write(line)
	return err
}

func (d *WriterDest) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

package sink

import (
	"bufio"
	"errors"
	"io"
	"os"
)

const bufferSize = 64 * 1024

// countingWriter counts bytes and remembers the first write error so it can
// be told apart from an encoding error returned by the callback.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	if err != nil && c.err == nil {
		c.err = err
	}
	return n, err
}

// SaveFile creates (or truncates) path and passes a buffered writer to
// write. It returns the number of bytes written. Failures to create, write,
// flush or close the file are returned as *IOError and a partially written
// file is removed.
func SaveFile(path string, write func(w io.Writer) error) (n int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, &IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cErr}
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	cw := &countingWriter{w: f}
	bw := bufio.NewWriterSize(cw, bufferSize)

	if err = write(bw); err != nil {
		if cw.err != nil {
			return cw.n, &IOError{Op: "write", Path: path, Err: cw.err}
		}
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			return cw.n, err
		}
		return cw.n, &IOError{Op: "write", Path: path, Err: err}
	}

	if err = bw.Flush(); err != nil {
		return cw.n, &IOError{Op: "flush", Path: path, Err: err}
	}

	return cw.n, nil
}

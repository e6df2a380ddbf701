package sink

import "fmt"

// IOError reports a failure to open or write an output file
type IOError struct {
	Op   string // "create", "write", "flush" or "close"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("sink: %s %s: %s", e.Op, e.Path, e.Err.Error())
}

func (e *IOError) Unwrap() error {
	return e.Err
}

package track404

import (
	"errors"
	"io"
	"os"
)

// Pipe represents a pipe object with an associated ReadAutoCloser. A pipe
// opened on a log source remembers the source name, so that read errors can be
// attributed to it.
type Pipe struct {
	Reader ReadAutoCloser
	source string
	err    error
	stdout io.Writer
}

// NewPipe returns a pointer to a new empty pipe.
func NewPipe() *Pipe {
	return &Pipe{
		Reader: ReadAutoCloser{},
		err:    nil,
		stdout: os.Stdout,
	}
}

// Close closes the pipe's associated reader. This is always safe to do, because
// pipes created from a non-closable source will have an `io.NopCloser` to
// call.
func (p *Pipe) Close() error {
	if p == nil {
		return nil
	}
	return p.Reader.Close()
}

// Error returns the last error returned by any pipe operation, or nil otherwise.
func (p *Pipe) Error() error {
	if p == nil {
		return nil
	}
	return p.err
}

// Source returns the name of the log source the pipe reads from, or the empty
// string if the pipe was not opened on a named source.
func (p *Pipe) Source() string {
	if p == nil {
		return ""
	}
	return p.source
}

// Read reads up to len(b) bytes from the data source into b. It returns the
// number of bytes read and any error encountered. At end of file, or on a nil
// pipe, Read returns 0, io.EOF.
//
// Unlike most sinks, Read does not necessarily read the whole contents of the
// pipe. It will read as many bytes as it takes to fill the slice.
func (p *Pipe) Read(b []byte) (int, error) {
	if p == nil {
		return 0, io.EOF
	}
	return p.Reader.Read(b)
}

// SetError sets the pipe's error status to the specified error.
func (p *Pipe) SetError(err error) {
	if p != nil {
		if err != nil {
			p.Close()
		}
		p.err = err
	}
}

// WithReader takes an io.Reader, and associates the pipe with that reader. If
// necessary, the reader will be automatically closed once it has been
// completely read.
func (p *Pipe) WithReader(r io.Reader) *Pipe {
	if p == nil {
		return nil
	}
	p.Reader = NewReadAutoCloser(r)
	return p
}

// WithSource records the name of the log source the pipe reads from.
func (p *Pipe) WithSource(name string) *Pipe {
	if p == nil {
		return nil
	}
	p.source = name
	return p
}

// WithStdout takes an io.Writer, and associates the pipe's standard output with
// that writer, instead of the default os.Stdout. This is primarily useful for
// testing.
func (p *Pipe) WithStdout(w io.Writer) *Pipe {
	if p == nil {
		return nil
	}
	p.stdout = w
	return p
}

// WithError sets the pipe's error status to the specified error and returns the
// modified pipe.
func (p *Pipe) WithError(err error) *Pipe {
	p.SetError(err)
	return p
}

// wrap attributes err to the pipe's source, if it has one.
func (p *Pipe) wrap(err error) error {
	if err == nil || p.source == "" {
		return err
	}
	var serr *SourceError
	if errors.As(err, &serr) {
		return err
	}
	return &SourceError{Source: p.source, Err: err}
}

package track404

import (
	"io"
)

// ReadAutoCloser wraps an io.Reader, and closes it automatically, if closable,
// once it has been completely read.
type ReadAutoCloser struct {
	r      io.Reader
	closer io.Closer
}

// Read reads up to len(b) bytes from the data source into b. It returns the
// number of bytes read and any error encountered. At end of file, Read returns
// 0, io.EOF. In the EOF case, the data source will be closed.
func (a ReadAutoCloser) Read(b []byte) (n int, err error) {
	if a.r == nil {
		return 0, io.EOF
	}
	n, err = a.r.Read(b)
	if err == io.EOF {
		a.Close()
	}
	return n, err
}

// Close closes the data source associated with a, and returns the result of
// that close operation.
func (a ReadAutoCloser) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// NewReadAutoCloser returns a ReadAutoCloser wrapping the supplied Reader. If
// the Reader is not a Closer, it will be wrapped in a NopCloser to make it
// closable.
func NewReadAutoCloser(r io.Reader) ReadAutoCloser {
	c, ok := r.(io.Closer)
	if !ok {
		c = io.NopCloser(r)
	}
	return ReadAutoCloser{r: r, closer: c}
}

// newDecodingAutoCloser returns a ReadAutoCloser that reads decoded data from
// dec, and closes both dec and the underlying raw stream once dec is
// exhausted.
func newDecodingAutoCloser(dec io.ReadCloser, raw io.Closer) ReadAutoCloser {
	return ReadAutoCloser{r: dec, closer: chainCloser{dec, raw}}
}

type chainCloser []io.Closer

func (cs chainCloser) Close() error {
	var first error
	for _, c := range cs {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

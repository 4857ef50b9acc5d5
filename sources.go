package track404

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// StdinSource is the source name that denotes the program's standard input.
const StdinSource = "-"

// SourceKind is one of the closed set of log source variants.
type SourceKind int

const (
	// SourceFile is a plain text log file.
	SourceFile SourceKind = iota
	// SourceGzip is a gzip-compressed log file, decompressed transparently.
	SourceGzip
	// SourceStdin is the program's standard input.
	SourceStdin
)

func (k SourceKind) String() string {
	switch k {
	case SourceGzip:
		return "gzip"
	case SourceStdin:
		return "stdin"
	default:
		return "file"
	}
}

// KindOf classifies a source name: the literal "-" is standard input, a name
// ending in ".gz" is a gzip file, and anything else is a plain file.
func KindOf(name string) SourceKind {
	switch {
	case name == StdinSource:
		return SourceStdin
	case strings.HasSuffix(name, ".gz"):
		return SourceGzip
	default:
		return SourceFile
	}
}

// Open returns a pipe reading lines from the named source, choosing the source
// variant with KindOf. If there is an error opening the source, the pipe's
// error status will be set to a *SourceError.
func Open(name string) *Pipe {
	switch KindOf(name) {
	case SourceStdin:
		return Stdin()
	case SourceGzip:
		return Gzip(name)
	default:
		return File(name)
	}
}

// Echo returns a pipe containing the supplied string.
func Echo(s string) *Pipe {
	return NewPipe().WithReader(strings.NewReader(s))
}

// File returns a *Pipe associated with the specified file. This is useful for
// starting pipelines. If there is an error opening the file, the pipe's error
// status will be set.
func File(name string) *Pipe {
	p := NewPipe().WithSource(name)
	f, err := os.Open(name)
	if err != nil {
		return p.WithError(p.wrap(err))
	}
	return p.WithReader(f)
}

// Gzip returns a *Pipe which reads the decompressed contents of the specified
// gzip file. If the file cannot be opened, or does not start with a valid gzip
// header, the pipe's error status will be set. Corruption later in the stream
// is reported when the pipe is read.
func Gzip(name string) *Pipe {
	p := NewPipe().WithSource(name)
	f, err := os.Open(name)
	if err != nil {
		return p.WithError(p.wrap(err))
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return p.WithError(p.wrap(err))
	}
	p.Reader = newDecodingAutoCloser(zr, f)
	return p
}

// Stdin returns a pipe which reads from the program's standard input.
func Stdin() *Pipe {
	return Reader(os.Stdin)
}

// Reader returns a pipe which reads from r as though it were standard input.
// The reader is never closed by the pipe, so the same stream may be named as a
// source more than once.
func Reader(r io.Reader) *Pipe {
	return NewPipe().WithReader(io.NopCloser(r)).WithSource(StdinSource)
}

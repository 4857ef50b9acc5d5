package track404

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
)

// Some tests require monkeying with stdout. Make this concurrency-safe.
var stdoutM sync.Mutex

func TestWithReader(t *testing.T) {
	t.Parallel()
	want := "Hello, world."
	p := NewPipe().WithReader(strings.NewReader(want))
	got, err := p.String()
	if err != nil {
		t.Error(err)
	}
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestError(t *testing.T) {
	t.Parallel()
	p := File("testdata/nonexistent.log")
	if p.Error() == nil {
		t.Error("want error status reading nonexistent file, but got nil")
	}
	defer func() {
		// Reading an erroneous pipe should not panic.
		if r := recover(); r != nil {
			t.Errorf("panic reading erroneous pipe: %v", r)
		}
	}()
	_, err := p.String()
	if err != p.Error() {
		t.Error(err)
	}
	_, err = p.Record(NewCounter(), NewExtractor(404))
	if err != p.Error() {
		t.Error(err)
	}
	e := errors.New("fake error")
	p.SetError(e)
	if p.Error() != e {
		t.Errorf("want %v when setting pipe error, got %v", e, p.Error())
	}
}

func TestWithSource(t *testing.T) {
	t.Parallel()
	p := NewPipe()
	if p.Source() != "" {
		t.Errorf("want no source on new pipe, got %q", p.Source())
	}
	p.WithSource("access.log")
	if p.Source() != "access.log" {
		t.Errorf("want source %q, got %q", "access.log", p.Source())
	}
	var nilPipe *Pipe
	if nilPipe.Source() != "" {
		t.Errorf("want no source on nil pipe, got %q", nilPipe.Source())
	}
}

func TestWrapAttributesErrorsToSourceOnce(t *testing.T) {
	t.Parallel()
	cause := errors.New("boom")
	p := NewPipe().WithSource("a.log")
	err := p.wrap(cause)
	var serr *SourceError
	if !errors.As(err, &serr) {
		t.Fatalf("want *SourceError, got %T", err)
	}
	if serr.Source != "a.log" {
		t.Errorf("want source a.log, got %q", serr.Source)
	}
	if !errors.Is(err, cause) {
		t.Error("want wrapped error to match its cause")
	}
	if p.wrap(err) != err {
		t.Error("want an existing *SourceError returned unchanged")
	}
	if NewPipe().wrap(cause) != cause {
		t.Error("want errors on unnamed pipes returned unchanged")
	}
}

// doMethodsOnPipe calls every kind of method on the supplied pipe and
// tries to trigger a panic.
func doMethodsOnPipe(t *testing.T, p *Pipe, kind string) {
	var action string
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("panic: %s on %s pipe", action, kind)
		}
	}()
	defer os.Remove("testdata/bogus.txt")
	action = "Close()"
	p.Close()
	action = "EachLine()"
	p.EachLine(func(string, *strings.Builder) {})
	action = "Error()"
	p.Error()
	action = "JQ()"
	p.JQ(".")
	action = "Read()"
	p.Read([]byte{})
	action = "Record()"
	p.Record(NewCounter(), NewExtractor(404))
	action = "Requests()"
	p.Requests(404)
	action = "Sanitize()"
	p.Sanitize()
	action = "SetError()"
	p.SetError(nil)
	action = "Source()"
	p.Source()
	action = "Stdout()"
	// Ensure we don't clash with TestStdout
	stdoutM.Lock()
	defer stdoutM.Unlock()
	p.Stdout()
	action = "String()"
	p.String()
	action = "WithError()"
	p.WithError(nil)
	action = "WithReader()"
	p.WithReader(strings.NewReader(""))
	action = "WithSource()"
	p.WithSource("bogus")
	action = "WriteFile()"
	p.WriteFile("testdata/bogus.txt")
}

func TestNilPipes(t *testing.T) {
	t.Parallel()
	doMethodsOnPipe(t, nil, "nil")
}

func TestZeroPipes(t *testing.T) {
	t.Parallel()
	doMethodsOnPipe(t, &Pipe{}, "zero")
}

func TestNewPipes(t *testing.T) {
	t.Parallel()
	doMethodsOnPipe(t, NewPipe(), "new")
}

func TestPipeIsReader(t *testing.T) {
	t.Parallel()
	var p io.Reader = NewPipe()
	_, err := io.ReadAll(p)
	if err != nil {
		t.Error(err)
	}
}

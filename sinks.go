package track404

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Tally describes how much of a source was read by Record.
type Tally struct {
	Lines   int
	Matched int
}

// cancelCheckInterval is how many lines are read between checks for a
// cancelled context.
const cancelCheckInterval = 4096

// String returns the contents of the Pipe as a string, or an error, and closes
// the pipe after reading. If there is an error reading, the pipe's error status
// is also set.
func (p *Pipe) String() (string, error) {
	if p == nil {
		return "", nil
	}
	if p.Error() != nil {
		return "", p.Error()
	}
	defer p.Close()
	res, err := io.ReadAll(p.Reader)
	if err != nil {
		err = p.wrap(err)
		p.SetError(err)
		return "", err
	}
	return string(res), nil
}

// Record reads access log lines from the pipe, and counts a hit in c for the
// sanitized path of every request matched by ex. Lines that do not match are
// skipped. It returns the number of lines read and matched, and closes the pipe
// after reading. If there is an error reading the pipe, the pipe's error status
// is also set.
func (p *Pipe) Record(c *Counter, ex *Extractor) (Tally, error) {
	return p.record(context.Background(), c, ex)
}

func (p *Pipe) record(ctx context.Context, c *Counter, ex *Extractor) (Tally, error) {
	var tally Tally
	if p == nil || p.Error() != nil {
		return tally, p.Error()
	}
	p.scan(func(line string) bool {
		tally.Lines++
		if tally.Lines%cancelCheckInterval == 0 && ctx.Err() != nil {
			p.SetError(ctx.Err())
			return false
		}
		req, ok := ex.Extract(line)
		if !ok {
			return true
		}
		c.Record(SanitizePath(req.Path))
		tally.Matched++
		return true
	})
	return tally, p.Error()
}

// Stdout writes the contents of the pipe to the program's standard output. It
// returns the number of bytes successfully written, plus a non-nil error if the
// write failed or if there was an error reading from the pipe. If the pipe has
// error status, Stdout returns zero plus the existing error.
func (p *Pipe) Stdout() (int, error) {
	if p == nil {
		return 0, nil
	}
	if p.Error() != nil {
		return 0, p.Error()
	}
	output, err := p.String()
	if err != nil {
		return 0, err
	}
	w := p.stdout
	if w == nil {
		w = os.Stdout
	}
	return fmt.Fprint(w, output)
}

// WriteFile writes the contents of the Pipe to the specified file, replacing
// any previous contents, and closes the pipe after reading. It returns the
// number of bytes successfully written, or an error. If there is an error
// reading or writing, the pipe's error status is also set.
func (p *Pipe) WriteFile(fileName string) (int64, error) {
	if p == nil {
		return 0, nil
	}
	if p.Error() != nil {
		return 0, p.Error()
	}
	defer p.Close()
	out, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		p.SetError(err)
		return 0, err
	}
	wrote, err := io.Copy(out, p.Reader)
	if err != nil {
		out.Close()
		p.SetError(err)
		return 0, err
	}
	if err := out.Close(); err != nil {
		p.SetError(err)
		return 0, err
	}
	return wrote, nil
}

package track404

import (
	"bufio"
	"encoding/json"
	"strings"

	"github.com/itchyny/gojq"
)

// MaxLineLength is the longest log line a pipe will read. A longer line is a
// read error.
const MaxLineLength = 1 << 20

// EachLine calls the specified function for each line of input, passing it the
// line as a string, and a *strings.Builder to write its output to. The return
// value from EachLine is a pipe containing the contents of the strings.Builder.
func (p *Pipe) EachLine(process func(string, *strings.Builder)) *Pipe {
	if p == nil || p.Error() != nil {
		return p
	}
	output := strings.Builder{}
	p.scan(func(line string) bool {
		process(line, &output)
		return p.Error() == nil
	})
	if p.Error() != nil {
		return p
	}
	return Echo(output.String())
}

// scan calls process for each line of input until the input is exhausted or
// process returns false. A read error sets the pipe's error status.
func (p *Pipe) scan(process func(string) bool) {
	scanner := bufio.NewScanner(p.Reader)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	for scanner.Scan() {
		if !process(scanner.Text()) {
			p.Close()
			return
		}
	}
	if err := scanner.Err(); err != nil {
		p.SetError(p.wrap(err))
	}
}

// Requests reads access log lines from the pipe, and returns a new pipe
// containing the path of each request answered with the given status, one per
// line. Lines that are not matching requests are dropped.
func (p *Pipe) Requests(status int) *Pipe {
	ex := NewExtractor(status)
	return p.EachLine(func(line string, out *strings.Builder) {
		if req, ok := ex.Extract(line); ok {
			out.WriteString(req.Path)
			out.WriteRune('\n')
		}
	})
}

// Sanitize reads request paths from the pipe, one per line, and returns a new
// pipe containing each path with SanitizePath applied.
func (p *Pipe) Sanitize() *Pipe {
	return p.EachLine(func(line string, out *strings.Builder) {
		out.WriteString(SanitizePath(line))
		out.WriteRune('\n')
	})
}

// JQ reads a JSON document from the pipe, and returns a new pipe containing
// the results of executing the jq query on it, one compact JSON value per
// line. If the query is invalid, the input is not valid JSON, or the query
// fails, the pipe's error status is set.
func (p *Pipe) JQ(query string) *Pipe {
	if p == nil || p.Error() != nil {
		return p
	}
	q, err := gojq.Parse(query)
	if err != nil {
		return p.WithError(err)
	}
	defer p.Close()
	var input interface{}
	if err := json.NewDecoder(p.Reader).Decode(&input); err != nil {
		return p.WithError(err)
	}
	output := strings.Builder{}
	enc := json.NewEncoder(&output)
	enc.SetEscapeHTML(false)
	iter := q.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return p.WithError(err)
		}
		if err := enc.Encode(v); err != nil {
			return p.WithError(err)
		}
	}
	return Echo(output.String())
}

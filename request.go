package track404

import (
	"regexp"
	"strconv"
	"strings"
)

// methods lists the HTTP methods recognised in a request field.
var methods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

// Request is the part of an access log line that identifies a request.
type Request struct {
	Method string
	Path   string
	Status int
}

// Extractor finds requests answered with one particular status code.
type Extractor struct {
	status int
	re     *regexp.Regexp
}

// NewExtractor returns an Extractor matching access log lines of the form
//
//	... "GET /some/path HTTP/1.1" 404 ...
//
// where the status following the quoted request field is status.
func NewExtractor(status int) *Extractor {
	code := regexp.QuoteMeta(strconv.Itoa(status))
	return &Extractor{
		status: status,
		re: regexp.MustCompile(`"(` + strings.Join(methods, "|") + `) ([^ ]+) HTTP/[0-9.]+" ` +
			code + `(?:\s|$)`),
	}
}

// Status returns the status code the extractor matches.
func (e *Extractor) Status() int {
	return e.status
}

// Extract returns the first request in line answered with the extractor's
// status. It reports false if there is no such request.
func (e *Extractor) Extract(line string) (Request, bool) {
	m := e.re.FindStringSubmatch(line)
	if m == nil {
		return Request{}, false
	}
	return Request{Method: m[1], Path: m[2], Status: e.status}, true
}

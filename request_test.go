package track404

import (
	"testing"
)

func TestExtract(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		name   string
		line   string
		status int
		want   Request
		ok     bool
	}{
		{
			name:   "combined log format",
			line:   `10.0.0.1 - - [17/Feb/2026:12:00:00 +0000] "GET /items/1 HTTP/1.1" 404 0 "-" "curl/8.0"`,
			status: 404,
			want:   Request{Method: "GET", Path: "/items/1", Status: 404},
			ok:     true,
		},
		{
			name:   "bare request field",
			line:   `"POST /api/login?next=/home HTTP/2.0" 404`,
			status: 404,
			want:   Request{Method: "POST", Path: "/api/login?next=/home", Status: 404},
			ok:     true,
		},
		{
			name:   "every method",
			line:   `"OPTIONS * HTTP/1.1" 404 0`,
			status: 404,
			want:   Request{Method: "OPTIONS", Path: "*", Status: 404},
			ok:     true,
		},
		{
			name:   "other status",
			line:   `"GET /ok HTTP/1.1" 200 512`,
			status: 404,
		},
		{
			name:   "configured status",
			line:   `"DELETE /jobs/9 HTTP/1.1" 500 0`,
			status: 500,
			want:   Request{Method: "DELETE", Path: "/jobs/9", Status: 500},
			ok:     true,
		},
		{
			name:   "status is a prefix of a longer token",
			line:   `"GET /items/3 HTTP/1.1" 4040 0`,
			status: 404,
		},
		{
			name:   "unknown method",
			line:   `"BREW /pot HTTP/1.1" 404 0`,
			status: 404,
		},
		{
			name:   "lower case method",
			line:   `"get /items HTTP/1.1" 404 0`,
			status: 404,
		},
		{
			name:   "missing protocol",
			line:   `"GET /items" 404 0`,
			status: 404,
		},
		{
			name:   "not an access log",
			line:   `2026-02-17T12:00:00Z ERROR upstream returned 404`,
			status: 404,
		},
		{
			name:   "empty line",
			line:   ``,
			status: 404,
		},
		{
			name:   "first matching request wins",
			line:   `"GET /first HTTP/1.1" 404 "GET /second HTTP/1.1" 404`,
			status: 404,
			want:   Request{Method: "GET", Path: "/first", Status: 404},
			ok:     true,
		},
		{
			name:   "earlier request with other status is skipped",
			line:   `"GET /first HTTP/1.1" 200 "GET /second HTTP/1.1" 404`,
			status: 404,
			want:   Request{Method: "GET", Path: "/second", Status: 404},
			ok:     true,
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NewExtractor(tc.status).Extract(tc.line)
			if ok != tc.ok {
				t.Fatalf("want ok %v, got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Errorf("want %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestExtractorStatus(t *testing.T) {
	t.Parallel()
	if got := NewExtractor(410).Status(); got != 410 {
		t.Errorf("want 410, got %d", got)
	}
}

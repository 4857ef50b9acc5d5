package track404

import (
	"testing"
)

func TestSanitizePath(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		path, want string
	}{
		{"/users/1234/edit", "/users/<num>/edit"},
		{"/v2/item55", "/v2/item<num>"},
		{"/a/123/b/4567", "/a/<num>/b/<num>"},
		{"/search?q=1&x=2", "/search"},
		{"/orders/42?ref=7", "/orders/<num>"},
		{"/no/digits/here", "/no/digits/here"},
		{"/Trailing/Slash/", "/Trailing/Slash/"},
		{"/percent%20encoded", "/percent%<num>encoded"},
		{"/only?", "/only"},
		{"?q=1", ""},
		{"", ""},
		{"007", "<num>"},
		{"/a1b22c333", "/a<num>b<num>c<num>"},
		{"/x/<num>/y", "/x/<num>/y"},
		{"/first?a=1?b=2", "/first"},
		{"/ünïcødé/٣", "/ünïcødé/<num>"},
		{"/users/٣٤٥/edit", "/users/<num>/edit"},
		{"/orders/１２３", "/orders/<num>"},
		{"/v²/x", "/v²/x"},
	}
	for _, tc := range tcs {
		got := SanitizePath(tc.path)
		if got != tc.want {
			t.Errorf("%q: want %q, got %q", tc.path, tc.want, got)
		}
	}
}

func FuzzSanitizePathIsIdempotent(f *testing.F) {
	for _, seed := range []string{"/users/1234/edit", "/search?q=1", "", "<num>", "9?9", "/a/1/b/2/c", "/٣٤/１２"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, path string) {
		once := SanitizePath(path)
		twice := SanitizePath(once)
		if once != twice {
			t.Errorf("%q: sanitized once to %q, but twice to %q", path, once, twice)
		}
	})
}

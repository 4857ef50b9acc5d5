package track404

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Lines returns a pipe containing one line per entry, in the form
//
//	/some/path/<num>: 12 hits
func Lines(entries []Entry) *Pipe {
	var output strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&output, "%s: %d hits\n", e.Path, e.Count)
	}
	return Echo(output.String())
}

// JSON returns a pipe containing the entries as a JSON array of objects with
// "path" and "count" fields. No entries give an empty array.
func JSON(entries []Entry) *Pipe {
	if entries == nil {
		entries = []Entry{}
	}
	var output strings.Builder
	enc := json.NewEncoder(&output)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return NewPipe().WithError(err)
	}
	return Echo(output.String())
}

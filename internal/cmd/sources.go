package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bitfield/track404"
	"github.com/bmatcuk/doublestar/v4"
	"mvdan.cc/sh/v3/shell"
)

// expandSources resolves globs in names to the files they match, keeping the
// given order. With expandEnv set, $VAR and ${VAR} references are expanded
// first, as they would be by a shell; names from the command line have already
// been through one.
func expandSources(names []string, expandEnv bool) ([]string, error) {
	var sources []string
	for _, name := range names {
		if expandEnv {
			expanded, err := shell.Expand(name, os.Getenv)
			if err != nil {
				return nil, fmt.Errorf("expanding %q: %w", name, err)
			}
			name = expanded
		}
		if name == track404.StdinSource || !isGlob(name) {
			sources = append(sources, name)
			continue
		}
		matches, err := doublestar.FilepathGlob(name, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", name, err)
		}
		if len(matches) == 0 {
			return nil, &track404.ConfigError{Err: fmt.Errorf("no logs match %q", name)}
		}
		sort.Strings(matches)
		sources = append(sources, matches...)
	}
	return sources, nil
}

func isGlob(name string) bool {
	return strings.ContainsAny(name, "*?[{")
}

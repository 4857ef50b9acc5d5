package track404

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SourceError reports a log source that could not be opened, decoded, or read.
// A SourceError aborts the run: no results are produced from a partial set of
// sources.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ConfigError reports an invalid Config. It is returned before any source is
// opened.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	var verrs validator.ValidationErrors
	if !errors.As(e.Err, &verrs) {
		return "invalid configuration: " + e.Err.Error()
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		problems = append(problems, fmt.Sprintf("%s must satisfy %s (got %v)", fe.Field(), rule, fe.Value()))
	}
	return "invalid configuration: " + strings.Join(problems, "; ")
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

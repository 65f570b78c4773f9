package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// DefaultLevel matches what the command prints without --log-level.
const DefaultLevel = "info"

// New builds the process logger. level is one of trace, debug, info, warn
// or error.
func New(name, level string, w io.Writer) (hclog.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}
	l := hclog.LevelFromString(level)
	if l == hclog.NoLevel {
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  l,
		Output: w,
		Color:  hclog.AutoColor,
	}), nil
}

// Levels lists the accepted --log-level values.
func Levels() string {
	return strings.Join([]string{"trace", "debug", "info", "warn", "error"}, "|")
}

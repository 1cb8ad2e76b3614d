// Package command implements the skull's newline-terminated text
// command protocol: parsing incoming lines and dispatching them to the
// scheduler, the servo driver and the eye layer. Replies are single
// lines, "ok" or "err: ...", matching what the wireless host expects.
package command

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// Command is one parsed command line
type Command struct {
	Name string
	Args []string
}

// Parse splits a command line into name and arguments. Empty lines and
// '#' comment lines yield a nil command, not an error.
func Parse(line string) (*Command, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}

	fields, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", line, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	return &Command{
		Name: strings.ToLower(fields[0]),
		Args: fields[1:],
	}, nil
}

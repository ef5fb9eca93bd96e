package cli

import (
	"errors"
	"fmt"
)

type invalidArgError struct {
	name  string
	value string
	want  string
}

func (e invalidArgError) Error() string {
	return fmt.Sprintf("invalid %s %q (expected %s)", e.name, e.value, e.want)
}

var errAborted = errors.New("aborted")

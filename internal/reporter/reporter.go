// Package reporter signals run outcome to the invoking workflow runner
// using its stdout command protocol.
package reporter

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// UnknownError is reported for failures that carry no error value.
const UnknownError = "unknown error occurred"

// Reporter writes informational lines and failure commands to out.
type Reporter struct {
	mu     sync.Mutex
	out    io.Writer
	failed bool
}

// New returns a Reporter writing to out.
func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Info writes msg as a plain log line.
func (r *Reporter) Info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, msg)
}

// Fail marks the run failed. v is usually an error; anything else is
// reported as UnknownError.
func (r *Reporter) Fail(v any) {
	msg := UnknownError
	if err, ok := v.(error); ok && err != nil {
		msg = err.Error()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = true
	fmt.Fprintf(r.out, "::error::%s\n", escapeData(msg))
}

// Failed reports whether Fail has been called.
func (r *Reporter) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// ExitCode is 1 after a failure and 0 otherwise.
func (r *Reporter) ExitCode() int {
	if r.Failed() {
		return 1
	}
	return 0
}

var dataEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

func escapeData(s string) string {
	return dataEscaper.Replace(s)
}

package exit

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	CodeSuccess = 0
	CodeFailure = 1
)

// Prefix starts every failure message.
const Prefix = "jdoc: "

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
// Failure messages always end with a newline.
func (r *Result) Print() {
	message := r.Message
	if r.ExitCode != CodeSuccess && !strings.HasSuffix(message, "\n") {
		message += "\n"
	}
	fmt.Fprint(r.Output, message)
}

// To picks stdout or stderr according to the exit code. A nil writer keeps
// the current destination.
func (r *Result) To(stdout, stderr io.Writer) *Result {
	if r.ExitCode == CodeSuccess && stdout != nil {
		r.Output = stdout
	}
	if r.ExitCode != CodeSuccess && stderr != nil {
		r.Output = stderr
	}
	return r
}

// Success creates a successful exit result that outputs to stdout with exit code 0.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeSuccess,
		Message:  message,
	}
}

// Error creates an error exit result that outputs to stderr with exit code 1.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeFailure,
		Message:  Prefix + message,
	}
}

// Errorf creates an error exit result with formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// FromError converts err into a failure result. A nil error is a silent success.
func FromError(err error) *Result {
	if err == nil {
		return Success("")
	}
	return Error(err.Error())
}

// Package command runs one jdoc invocation: it reads standard input, applies
// the configured command and reports the outcome as an exit result.
package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jacoelho/jdoc/internal/buffer"
	"github.com/jacoelho/jdoc/internal/config"
	"github.com/jacoelho/jdoc/internal/exit"
)

// Runner executes a single configured command.
type Runner struct {
	config *config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// New creates a Runner bound to the given streams. Logs go to stderr.
func New(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) *Runner {
	return &Runner{
		config: cfg,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: cfg.Logger(stderr),
	}
}

// Run executes the command and returns the process exit code. Output is
// written only once the command has fully succeeded.
func (r *Runner) Run(ctx context.Context) int {
	result := r.execute(ctx)
	result.To(r.stdout, r.stderr).Print()
	return result.ExitCode
}

func (r *Runner) execute(ctx context.Context) *exit.Result {
	command := r.config.Command
	r.logger.Debug("running command", "command", command.String())

	var input []byte
	if command.ReadsInput() {
		data, err := r.readInput(ctx)
		if err != nil {
			return exit.FromError(err)
		}
		input = data
	}

	out := buffer.New()
	if err := r.dispatch(out, input); err != nil {
		r.logger.Debug("command failed", "command", command.String(), "error", err)
		return exit.FromError(err)
	}

	r.logger.Debug("command succeeded", "command", command.String(), "output_bytes", out.Len())
	return exit.Success(out.String())
}

// readInput reads stdin to EOF. Cancellation is observed before and after
// the read, which is the only blocking step.
func (r *Runner) readInput(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in := buffer.New()
	if _, err := in.ReadFrom(r.stdin); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("read input", "bytes", in.Len())
	return in.Bytes(), nil
}

func (r *Runner) dispatch(out *buffer.Buffer, input []byte) error {
	switch r.config.Command {
	case config.CommandCheck:
		return r.check(out, input)
	case config.CommandType:
		return r.typeOf(out, input)
	case config.CommandGet:
		return r.get(out, input)
	case config.CommandKeys:
		return r.keys(out, input)
	case config.CommandSet:
		return r.set(out, input)
	case config.CommandSplice:
		return r.splice(out, input)
	case config.CommandInsert:
		return r.insert(out, input)
	case config.CommandSlice:
		return r.slice(out, input)
	case config.CommandDecodeString:
		return r.decodeString(out, input)
	case config.CommandEncodeString:
		return r.encodeString(out, input)
	case config.CommandEncodeKey:
		return r.encodeKey(out)
	default:
		return fmt.Errorf("%w: %s", config.ErrUnknownCommand, r.config.Command)
	}
}

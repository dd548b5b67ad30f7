package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacoelho/jdoc/internal/command"
	"github.com/jacoelho/jdoc/internal/config"
	"github.com/jacoelho/jdoc/internal/exit"
)

func main() {
	exitCode := run(os.Args, os.Stdin, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(args)
	if err != nil {
		exitResult := parseFailure(err)
		exitResult.To(stdout, stderr).Print()
		return exitResult.ExitCode
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return command.New(cfg, stdin, stdout, stderr).Run(ctx)
}

func parseFailure(err error) *exit.Result {
	if errors.Is(err, config.ErrHelp) {
		return exit.Success(config.Usage() + "\n")
	}
	return exit.Errorf("%v\n\n%s\n", err, config.Usage())
}

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jacoelho/jdoc/internal/parser"
	"github.com/jacoelho/jdoc/internal/pathing"
)

var (
	ErrNoArguments        = errors.New("no arguments provided")
	ErrHelp               = errors.New("help requested")
	ErrMissingCommand     = errors.New("no command given")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrMissingPath        = errors.New("missing path")
	ErrInvalidPath        = errors.New("invalid path")
	ErrMissingArgument    = errors.New("missing argument")
	ErrUnexpectedArgument = errors.New("unexpected argument")
	ErrInvalidNumber      = errors.New("expected an unsigned decimal number")
	ErrInvalidLogFormat   = errors.New("--log-format must be one of: text, json")
	ErrConfigFile         = errors.New("cannot load config file")
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// parseLogFormat normalises a format name from a flag or the defaults file.
func parseLogFormat(text string) LogFormat {
	return LogFormat(strings.ToLower(strings.TrimSpace(text)))
}

// Config represents one parsed invocation of jdoc.
type Config struct {
	Command Command

	// Path addresses the target of get, set, insert and slice, and the
	// nested array of splice when HasPath is set.
	Path    pathing.Path
	HasPath bool

	// Splice position and removal count.
	Index int
	Count int

	// Argument is the raw component given to encode-key.
	Argument string

	Debug      bool
	LogFormat  LogFormat
	MaxDepth   int
	ConfigFile string
}

// Validate checks values that may come from either flags or the defaults file.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w, got: %s", ErrInvalidLogFormat, c.LogFormat)
	}

	if c.Command == CommandUnknown {
		return ErrMissingCommand
	}

	return nil
}

// ParserOptions returns the parser settings for this invocation.
func (c *Config) ParserOptions() parser.Options {
	return parser.Options{MaxDepth: c.MaxDepth}
}

// Logger builds the structured logger for this invocation. Every record
// carries a fresh invocation id.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch c.LogFormat {
	case LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(slog.String("invocation", uuid.NewString()))
}

// Parse parses command-line arguments and returns a validated Config.
// Global flags come before the command name.
func Parse(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, ErrNoArguments
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	debug := fs.Bool("debug", false, "Enable debug logging on stderr")
	logFormat := fs.String("log-format", string(LogFormatText), "Log format: text or json")
	configFile := fs.String("config", "", "Path to a YAML file with default settings")
	maxDepth := fs.Int("max-depth", parser.DefaultMaxDepth, "Maximum nesting depth of parsed documents")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, fmt.Errorf("parse arguments: %w", err)
	}

	cfg := &Config{
		Debug:      *debug,
		LogFormat:  parseLogFormat(*logFormat),
		MaxDepth:   *maxDepth,
		ConfigFile: *configFile,
	}

	if cfg.ConfigFile != "" {
		defaults, err := loadFile(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}

		explicit := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) {
			explicit[f.Name] = true
		})
		defaults.apply(cfg, explicit)
	}

	if err := cfg.parseCommand(fs.Args()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) parseCommand(args []string) error {
	if len(args) == 0 {
		return ErrMissingCommand
	}

	command, ok := ParseCommand(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	c.Command = command
	rest := args[1:]

	switch command {
	case CommandGet, CommandSet, CommandInsert, CommandSlice:
		if len(rest) == 0 {
			return fmt.Errorf("%w for %s", ErrMissingPath, command)
		}
		if len(rest) > 1 {
			return fmt.Errorf("%w: %s", ErrUnexpectedArgument, rest[1])
		}
		return c.setPath(rest[0])

	case CommandSplice:
		return c.parseSplice(rest)

	case CommandEncodeKey:
		if len(rest) == 0 {
			return fmt.Errorf("%w for %s", ErrMissingArgument, command)
		}
		if len(rest) > 1 {
			return fmt.Errorf("%w: %s", ErrUnexpectedArgument, rest[1])
		}
		c.Argument = rest[0]
		return nil

	default:
		if len(rest) > 0 {
			return fmt.Errorf("%w: %s", ErrUnexpectedArgument, rest[0])
		}
		return nil
	}
}

func (c *Config) parseSplice(args []string) error {
	fs := flag.NewFlagSet(CommandSplice.String(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	path := fs.String("path", "", "Path to a nested array")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ErrHelp
		}
		return fmt.Errorf("parse %s arguments: %w", CommandSplice, err)
	}

	explicit := false
	fs.Visit(func(f *flag.Flag) {
		explicit = explicit || f.Name == "path"
	})
	if explicit {
		if err := c.setPath(*path); err != nil {
			return err
		}
		c.HasPath = true
	}

	rest := fs.Args()
	if len(rest) < 2 {
		return fmt.Errorf("%w for %s: index and count are required", ErrMissingArgument, CommandSplice)
	}
	if len(rest) > 2 {
		return fmt.Errorf("%w: %s", ErrUnexpectedArgument, rest[2])
	}

	var err error
	if c.Index, err = parseUnsigned("index", rest[0]); err != nil {
		return err
	}
	if c.Count, err = parseUnsigned("count", rest[1]); err != nil {
		return err
	}
	return nil
}

func (c *Config) setPath(text string) error {
	p, err := pathing.Parse(text)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidPath, text, err)
	}
	c.Path = p
	return nil
}

// parseUnsigned accepts digits only. The empty string is rejected even
// though it reads as index 0 inside a path.
func parseUnsigned(name, text string) (int, error) {
	n, ok := pathing.ParseIndex(text)
	if !ok || text == "" {
		return 0, fmt.Errorf("%w for %s, got: %q", ErrInvalidNumber, name, text)
	}
	return n, nil
}

// Usage returns command usage text.
func Usage() string {
	return `jdoc - read and edit JSON documents from standard input

Usage: jdoc [options] <command> [arguments]

Commands:
  check                         Print ERROR unless stdin holds exactly one value
  type                          Print the type of the value on stdin
  get <path>                    Print the value at path
  keys                          Print the keys of the object on stdin, one per line
  set <path>                    Replace the value at path with the second value on stdin,
                                or delete it when stdin holds a single value
  splice [-path P] <index> <count>
                                Replace count elements of the array at index with the
                                values following the array on stdin
  insert <path>                 Insert the second value on stdin before the array
                                element at path
  slice <path>                  Remove the array element at path, shifting later
                                elements left
  decode-string                 Print the raw contents of the string on stdin
  encode-string                 Escape stdin as the body of a JSON string
  encode-key <component>        Escape '.' and '\' in a path component

Options:
  --debug                 Enable debug logging on stderr
  --log-format FORMAT     Log format: text or json (default: text)
  --config FILE           YAML file with defaults for debug, log_format and max_depth
  --max-depth N           Maximum nesting depth of parsed documents (negative for unlimited)
  -h, --help              Show this help message

Paths:
  Components are separated by '.'. Use '\.' for a literal dot and '\\' for a
  literal backslash. Array elements are addressed by decimal index.

Examples:
  echo '{"a":{"b":[1,2]}}' | jdoc get a.b.1
  echo '{"a":1} 2' | jdoc set a
  echo '[1,2,3,4] 9' | jdoc splice 1 2`
}

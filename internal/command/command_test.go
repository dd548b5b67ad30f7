package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jdoc/internal/config"
)

type goldenCase struct {
	Name   string   `yaml:"name"`
	Args   []string `yaml:"args"`
	Stdin  string   `yaml:"stdin"`
	Stdout string   `yaml:"stdout"`
	Stderr string   `yaml:"stderr"`
	Exit   int      `yaml:"exit"`
}

func loadGoldenCases(t *testing.T) []goldenCase {
	t.Helper()

	f, err := os.Open("testdata/cases.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var cases []goldenCase
	if err := yaml.NewDecoder(f, yaml.DisallowUnknownField()).Decode(&cases); err != nil {
		t.Fatalf("decode cases: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("no golden cases found")
	}
	return cases
}

// invoke mirrors the entry point: configuration errors exit 1 before any
// input is read.
func invoke(ctx context.Context, args []string, stdin string) (string, string, int) {
	var stdout, stderr bytes.Buffer

	cfg, err := config.Parse(append([]string{"jdoc"}, args...))
	if err != nil {
		return "", err.Error(), 1
	}

	code := New(cfg, strings.NewReader(stdin), &stdout, &stderr).Run(ctx)
	return stdout.String(), stderr.String(), code
}

func TestRun_Golden(t *testing.T) {
	t.Parallel()

	for _, tc := range loadGoldenCases(t) {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			stdout, stderr, code := invoke(context.Background(), tc.Args, tc.Stdin)

			if code != tc.Exit {
				t.Fatalf("Run() exit = %d, want %d (stderr %q)", code, tc.Exit, stderr)
			}
			if stdout != tc.Stdout {
				t.Fatalf("Run() stdout = %q, want %q", stdout, tc.Stdout)
			}
			if tc.Stderr != "" && !strings.Contains(stderr, tc.Stderr) {
				t.Fatalf("Run() stderr = %q, want it to contain %q", stderr, tc.Stderr)
			}
			if tc.Exit == 0 && stderr != "" {
				t.Fatalf("Run() stderr = %q, want empty on success", stderr)
			}
		})
	}
}

func TestRun_SupplementaryPlane(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{name: "decode_surrogate_pair", args: []string{"decode-string"}, stdin: `"\ud83d\ude00"`, want: "\U0001F600"},
		{name: "encode_surrogate_pair", args: []string{"encode-string"}, stdin: "\U0001F600", want: `\ud83d\ude00`},
		{name: "get_reescapes", args: []string{"get", "e"}, stdin: `{"e":"\ud83d\ude00"}`, want: "\"\\ud83d\\ude00\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, stderr, code := invoke(context.Background(), tt.args, tt.stdin)
			if code != 0 {
				t.Fatalf("Run() exit = %d, stderr %q", code, stderr)
			}
			if stdout != tt.want {
				t.Fatalf("Run() stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestRun_InvalidUTF8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		stdin string
	}{
		{name: "encode_string", args: []string{"encode-string"}, stdin: "ok\xff"},
		{name: "print_raw_bytes", args: []string{"get", "s"}, stdin: "{\"s\":\"\xc3\x28\"}"},
		{name: "encoded_surrogate_pair", args: []string{"encode-string"}, stdin: "\xed\xa0\x80\xed\xb0\x80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, stderr, code := invoke(context.Background(), tt.args, tt.stdin)
			if code != 1 {
				t.Fatalf("Run() exit = %d, want 1", code)
			}
			if stdout != "" {
				t.Fatalf("Run() stdout = %q, want nothing on failure", stdout)
			}
			if !strings.Contains(stderr, "invalid UTF-8") {
				t.Fatalf("Run() stderr = %q, want invalid UTF-8 error", stderr)
			}
		})
	}
}

func TestRun_EncodeThenDecodeString(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"plain text\n",
		"caf\u00e9 \u20ac",
		"\U0001F600",
		"lone \xed\xa0\x80 high",
		"lone \xed\xb0\x80 low",
	}

	for _, input := range inputs {
		encoded, stderr, code := invoke(context.Background(), []string{"encode-string"}, input)
		if code != 0 {
			t.Fatalf("encode-string %q exit = %d, stderr %q", input, code, stderr)
		}

		decoded, stderr, code := invoke(context.Background(), []string{"decode-string"}, `"`+encoded+`"`)
		if code != 0 {
			t.Fatalf("decode-string %q exit = %d, stderr %q", encoded, code, stderr)
		}
		if decoded != input {
			t.Errorf("decode-string(encode-string(%q)) = %q", input, decoded)
		}
	}
}

func TestRun_EncodeKeyIgnoresStdin(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]string{"jdoc", "encode-key", "a.b"})
	if err != nil {
		t.Fatalf("config.Parse() error = %v", err)
	}

	var stdout, stderr bytes.Buffer
	stdin := iotest.ErrReader(errors.New("stdin must not be read"))

	if code := New(cfg, stdin, &stdout, &stderr).Run(context.Background()); code != 0 {
		t.Fatalf("Run() exit = %d, stderr %q", code, stderr.String())
	}
	if got, want := stdout.String(), `a\.b`; got != want {
		t.Fatalf("Run() stdout = %q, want %q", got, want)
	}
}

func TestRun_ReadError(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]string{"jdoc", "type"})
	if err != nil {
		t.Fatalf("config.Parse() error = %v", err)
	}

	var stdout, stderr bytes.Buffer
	stdin := iotest.ErrReader(errors.New("broken pipe"))

	if code := New(cfg, stdin, &stdout, &stderr).Run(context.Background()); code != 1 {
		t.Fatalf("Run() exit = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "cannot read standard input: broken pipe") {
		t.Fatalf("Run() stderr = %q", stderr.String())
	}
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stdout, stderr, code := invoke(ctx, []string{"type"}, "1")
	if code != 1 || stdout != "" {
		t.Fatalf("Run() = %q, %d, want no output and exit 1", stdout, code)
	}
	if !strings.Contains(stderr, context.Canceled.Error()) {
		t.Fatalf("Run() stderr = %q, want %q", stderr, context.Canceled)
	}
}

func TestRun_DebugLogging(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]string{"jdoc", "--debug", "--log-format", "json", "set", "a"})
	if err != nil {
		t.Fatalf("config.Parse() error = %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := New(cfg, strings.NewReader(`{"a":1} 2`), &stdout, &stderr).Run(context.Background())
	if code != 0 {
		t.Fatalf("Run() exit = %d, stderr %q", code, stderr.String())
	}

	logs := stderr.String()
	for _, want := range []string{`"msg":"running command"`, `"msg":"set"`, `"applied":true`, `"invocation":`, `"nodes":2`, `"depth":1`} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs = %q, want %s", logs, want)
		}
	}
	if got, want := stdout.String(), "{\n\t\"a\" : 2\n}\n"; got != want {
		t.Errorf("Run() stdout = %q, want %q", got, want)
	}
}

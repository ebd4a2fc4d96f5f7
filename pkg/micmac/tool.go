// Package micmac invokes the MicMac mm3d binary for a fixed set of
// photogrammetry operations. The package builds argument lists and runs the
// tool as a subprocess; it never parses tool output beyond pass or fail, and
// all heavy computation stays inside mm3d.
package micmac

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var ErrBinDirNotFound = errors.New("mm3d binary directory does not exist")

// Logger receives diagnostic output from the tool runner.
type Logger interface {
	Debugf(format string, args ...interface{})
}

// nopLogger is a no-op logger implementation.
type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}

// Command builds the argument list of one mm3d operation.
type Command interface {
	Args() []string
}

// validator is implemented by commands that can reject bad parameters before
// the tool is even started.
type validator interface {
	Validate() error
}

// Tool runs the mm3d binary installed in a fixed directory. The binary
// location is injected configuration: the process environment is never
// consulted or modified.
type Tool struct {
	binDir string
	logger Logger
}

// ToolOption configures a Tool.
type ToolOption func(t *Tool)

// ToolLogger sets the debug logger. Passing nil keeps the no-op default.
func ToolLogger(logger Logger) ToolOption {
	return func(t *Tool) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a runner for the mm3d binary installed in binDir and verifies
// the installation by probing mm3d -help.
func New(ctx context.Context, binDir string, opts ...ToolOption) (*Tool, error) {
	if _, err := os.Stat(binDir); err != nil {
		return nil, errors.Wrapf(ErrBinDirNotFound, "path %s", binDir)
	}

	tool := &Tool{
		binDir: binDir,
		logger: nopLogger{},
	}
	for _, opt := range opts {
		opt(tool)
	}

	if _, err := tool.Run(ctx, Help{}); err != nil {
		return nil, errors.Wrap(err, "unable to run mm3d, check the installation")
	}

	return tool, nil
}

// Exe returns the full path of the mm3d binary.
func (t *Tool) Exe() string {
	return filepath.Join(t.binDir, "mm3d")
}

// Result holds the captured output of one mm3d invocation.
type Result struct {
	Stdout string
	Stderr string
}

// Run invokes one mm3d operation and waits for it to finish. Output is
// captured, not interpreted: the only signal taken from the tool is pass or
// fail. There are no retries; cancellation goes through ctx.
func (t *Tool) Run(ctx context.Context, command Command) (*Result, error) {
	if v, ok := command.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	args := command.Args()
	t.logger.Debugf("executing: mm3d %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, t.Exe(), args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		t.logger.Debugf("command failed: %v, stderr: %s", err, res.Stderr)

		return res, errors.Wrapf(err, "mm3d %s", strings.Join(args, " "))
	}

	return res, nil
}

// Help probes the tool installation.
type Help struct{}

func (Help) Args() []string {
	return []string{"-help"}
}

package validate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"docsentry/internal/logging"
)

// ErrToolMissing indicates the external linter is not installed.
var ErrToolMissing = errors.New("tool not found on PATH")

// maxToolOutput caps captured linter output so a pathological run cannot
// balloon the report.
const maxToolOutput = 50000

// ToolRunner invokes external linter binaries with a shared timeout.
type ToolRunner struct {
	timeout time.Duration
}

// NewToolRunner creates a runner with the given per-invocation timeout.
func NewToolRunner(timeout time.Duration) *ToolRunner {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ToolRunner{timeout: timeout}
}

// Available reports whether the binary can be resolved on PATH.
func (tr *ToolRunner) Available(bin string) bool {
	_, err := exec.LookPath(bin)
	return err == nil
}

// Run executes bin with args in dir and returns combined stdout/stderr.
// A non-zero exit returns the output together with a wrapped error; the
// caller decides how to convert that into issues.
func (tr *ToolRunner) Run(ctx context.Context, dir, bin string, args ...string) (string, error) {
	if _, err := exec.LookPath(bin); err != nil {
		return "", fmt.Errorf("%s: %w", bin, ErrToolMissing)
	}

	execCtx, cancel := context.WithTimeout(ctx, tr.timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, bin, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.ToolsDebug("exec: %s %v (dir=%s, timeout=%v)", bin, args, dir, tr.timeout)

	err := cmd.Run()

	output := stdout.String()
	if stderr.Len() > 0 {
		if output != "" {
			output += "\n"
		}
		output += stderr.String()
	}

	if len(output) > maxToolOutput {
		output = output[:maxToolOutput] + "\n...[truncated]"
	}

	if err != nil {
		if execCtx.Err() == context.DeadlineExceeded {
			return output, fmt.Errorf("%s timed out after %v", bin, tr.timeout)
		}
		logging.Tools("exec failed: %s (%v)", bin, err)
		return output, fmt.Errorf("%s failed: %w", bin, err)
	}

	logging.ToolsDebug("exec completed: %s (%d bytes output)", bin, len(output))
	return output, nil
}

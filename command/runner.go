package command

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// stderrTailSize bounds how much of a failing tool's stderr ends up in errors.
const stderrTailSize = 4096

// Runner starts external tools.
type Runner interface {
	// Output runs name with args and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Stream runs name with args and calls onLine for every line written to
	// standard output. onLine may be nil.
	Stream(ctx context.Context, name string, args []string, onLine func(line string)) error
}

// ExecRunner is the Runner backed by os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner that executes real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	stderr := &tailBuffer{limit: stderrTailSize}
	cmd.Stderr = stderr

	output, err := cmd.Output()
	if err != nil {
		return nil, wrapExitError(ctx, name, err, stderr.String())
	}
	return output, nil
}

// Stream implements Runner.
func (r *ExecRunner) Stream(ctx context.Context, name string, args []string, onLine func(line string)) error {
	cmd := exec.CommandContext(ctx, name, args...)
	stderr := &tailBuffer{limit: stderrTailSize}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if onLine != nil {
			onLine(scanner.Text())
		}
	}
	scanErr := scanner.Err()
	if scanErr != nil {
		// keep the pipe empty so the process can exit
		_, _ = io.Copy(io.Discard, stdout)
	}

	if err := cmd.Wait(); err != nil {
		return wrapExitError(ctx, name, err, stderr.String())
	}
	if scanErr != nil {
		return fmt.Errorf("error reading %s output: %w", name, scanErr)
	}
	return nil
}

func wrapExitError(ctx context.Context, name string, err error, stderr string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s interrupted: %w", name, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg := strings.TrimSpace(stderr); msg != "" {
			return fmt.Errorf("%s failed: %w (output: %s)", name, err, msg)
		}
	}
	return fmt.Errorf("%s failed: %w", name, err)
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf.Write(p)
	if over := t.buf.Len() - t.limit; over > 0 {
		t.buf.Next(over)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.String()
}

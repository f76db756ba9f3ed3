// Package commandtest provides a scripted command.Runner for tests that must
// not depend on ffmpeg being installed.
package commandtest

import (
	"context"
	"sync"
)

// Call records one invocation made through a FakeRunner.
type Call struct {
	Name string
	Args []string
}

// Response scripts what a FakeRunner does for one binary.
type Response struct {
	// Output is returned by Output.
	Output []byte
	// Lines are delivered to the Stream callback in order.
	Lines []string
	// Err is returned by both Output and Stream.
	Err error
	// Hook runs before the response is produced, e.g. to create frame files.
	Hook func(args []string) error
}

// FakeRunner replays scripted responses keyed by binary name.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []Call
}

// NewFakeRunner returns an empty FakeRunner. Unscripted binaries succeed
// with no output.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]Response)}
}

// On scripts the response for name and returns the runner for chaining.
func (f *FakeRunner) On(name string, resp Response) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[name] = resp
	return f
}

// Calls returns a copy of every recorded invocation.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the invocations of one binary.
func (f *FakeRunner) CallsTo(name string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeRunner) record(name string, args []string) Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Name: name, Args: append([]string(nil), args...)})
	return f.responses[name]
}

// Output implements command.Runner.
func (f *FakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	resp := f.record(name, args)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if resp.Hook != nil {
		if err := resp.Hook(args); err != nil {
			return nil, err
		}
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Output, nil
}

// Stream implements command.Runner.
func (f *FakeRunner) Stream(ctx context.Context, name string, args []string, onLine func(line string)) error {
	resp := f.record(name, args)
	if err := ctx.Err(); err != nil {
		return err
	}
	if resp.Hook != nil {
		if err := resp.Hook(args); err != nil {
			return err
		}
	}
	if onLine != nil {
		for _, line := range resp.Lines {
			onLine(line)
		}
	}
	return resp.Err
}

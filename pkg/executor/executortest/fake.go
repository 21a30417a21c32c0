// Package executortest provides a scriptable executor.Executor for tests.
package executortest

import (
	"context"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/yt-notes/pkg/executor"
)

// Handler answers one command. Returning a nil Result is treated as empty output.
type Handler func(ctx context.Context, cmd executor.Command) (*executor.Result, error)

// Fake records every command and dispatches it to the handler registered for
// its name. Commands with no handler succeed with empty output.
type Fake struct {
	mu       sync.Mutex
	handlers map[string]Handler
	calls    []executor.Command
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{handlers: make(map[string]Handler)}
}

// On registers h for commands named name.
func (f *Fake) On(name string, h Handler) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[name] = h
	return f
}

// Calls returns a copy of every command run so far.
func (f *Fake) Calls() []executor.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]executor.Command, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsTo returns the commands run under name.
func (f *Fake) CallsTo(name string) []executor.Command {
	var out []executor.Command
	for _, c := range f.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) Run(ctx context.Context, cmd executor.Command) (*executor.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	h := f.handlers[cmd.Name]
	f.mu.Unlock()

	if h == nil {
		return &executor.Result{}, nil
	}
	res, err := h(ctx, cmd)
	if res == nil {
		res = &executor.Result{}
	}
	return res, err
}

// Stdout returns a handler that prints out and succeeds.
func Stdout(out string) Handler {
	return func(context.Context, executor.Command) (*executor.Result, error) {
		return &executor.Result{Stdout: []byte(out)}, nil
	}
}

// Fail returns a handler that always fails with err.
func Fail(err error) Handler {
	return func(context.Context, executor.Command) (*executor.Result, error) {
		return &executor.Result{ExitCode: 1}, err
	}
}

// Arg returns the value following flag in args, or "".
func Arg(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

// Joined renders a command for assertion messages.
func Joined(cmd executor.Command) string {
	return strings.Join(append([]string{cmd.Name}, cmd.Args...), " ")
}

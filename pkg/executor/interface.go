package executor

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is wrapped by errors returned when a command outlives its deadline.
var ErrTimeout = errors.New("command timed out")

// Executor defines the interface for executing external commands
type Executor interface {
	// Run executes cmd and returns its captured output.
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// Command describes a single subprocess invocation.
type Command struct {
	Name string
	Args []string
	// Timeout bounds the run. Zero leaves only the caller's context.
	Timeout time.Duration
}

// Result holds the output of a finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Options configures an Executor.
type Options struct {
	// BinDir is searched first for bare command names and prepended to the
	// PATH of every child process.
	BinDir string
	// GracePeriod is the delay between SIGTERM and SIGKILL on cancellation.
	GracePeriod time.Duration
}

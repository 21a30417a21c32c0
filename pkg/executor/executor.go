package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

const defaultGracePeriod = 5 * time.Second

type implExecutor struct {
	binDir      string
	gracePeriod time.Duration
	env         []string
}

// New creates a new Executor instance
func New(opts Options) Executor {
	e := &implExecutor{
		gracePeriod: opts.GracePeriod,
	}
	if e.gracePeriod <= 0 {
		e.gracePeriod = defaultGracePeriod
	}
	if opts.BinDir != "" {
		if abs, err := filepath.Abs(opts.BinDir); err == nil {
			e.binDir = abs
		} else {
			e.binDir = opts.BinDir
		}
		e.env = withPathDir(os.Environ(), e.binDir)
	}
	return e
}

// Run executes cmd, killing its whole process group when the context ends.
func (e *implExecutor) Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("executor: command name is required")
	}

	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, e.resolve(cmd.Name), cmd.Args...)
	c.Env = e.env

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = e.gracePeriod

	start := time.Now()
	err := c.Run()

	res := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: c.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				return res, fmt.Errorf("command '%s' after %s: %w", cmd.Name, res.Duration.Round(time.Millisecond), ErrTimeout)
			}
			return res, fmt.Errorf("command '%s' cancelled: %w", cmd.Name, ctxErr)
		}
		// Include stderr in error message for debugging
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return res, fmt.Errorf("command '%s' failed: %w\nstderr: %s", cmd.Name, err, lastLines(stderrStr, 5))
		}
		return res, fmt.Errorf("command '%s' failed: %w", cmd.Name, err)
	}

	return res, nil
}

// resolve prefers a binary of the same name inside binDir.
func (e *implExecutor) resolve(name string) string {
	if e.binDir == "" || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	candidate := filepath.Join(e.binDir, name)
	if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
		return candidate
	}
	return name
}

func withPathDir(env []string, dir string) []string {
	out := make([]string, 0, len(env)+1)
	found := false
	for _, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			kv = "PATH=" + dir + string(os.PathListSeparator) + strings.TrimPrefix(kv, "PATH=")
			found = true
		}
		out = append(out, kv)
	}
	if !found {
		out = append(out, "PATH="+dir)
	}
	return out
}

// ffmpeg writes a banner before the actual error; keep only the tail.
func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

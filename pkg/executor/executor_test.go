package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRun(t *testing.T) {
	exec := New(Options{})
	res, err := exec.Run(context.Background(), Command{Name: "echo", Args: []string{"hello", "world"}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.TrimSpace(string(res.Stdout)) != "hello world" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "hello world")
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
}

func TestRunExitCode(t *testing.T) {
	exec := New(Options{})
	res, err := exec.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo boom >&2; exit 3"},
	})
	if err == nil {
		t.Fatal("Run() should fail on non-zero exit")
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error should carry stderr, got %v", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("plain failure must not be reported as timeout")
	}
}

func TestRunTimeout(t *testing.T) {
	exec := New(Options{GracePeriod: 200 * time.Millisecond})
	res, err := exec.Run(context.Background(), Command{
		Name:    "sleep",
		Args:    []string{"10"},
		Timeout: 100 * time.Millisecond,
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Run() error = %v, want ErrTimeout", err)
	}
	if res.Duration > 5*time.Second {
		t.Errorf("process took too long to die: %v", res.Duration)
	}
}

func TestRunCancelled(t *testing.T) {
	exec := New(Options{GracePeriod: 200 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := exec.Run(ctx, Command{Name: "sleep", Args: []string{"10"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunEmptyName(t *testing.T) {
	if _, err := New(Options{}).Run(context.Background(), Command{}); err == nil {
		t.Fatal("Run() should reject an empty command")
	}
}

func TestBinDir(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-tool")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho from-bin-dir\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	exec := New(Options{BinDir: dir})

	res, err := exec.Run(context.Background(), Command{Name: "fake-tool"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.TrimSpace(string(res.Stdout)) != "from-bin-dir" {
		t.Errorf("Stdout = %q", res.Stdout)
	}

	// Children see the directory on PATH as well.
	res, err = exec.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "fake-tool"}})
	if err != nil {
		t.Fatalf("Run() via PATH error = %v", err)
	}
	if strings.TrimSpace(string(res.Stdout)) != "from-bin-dir" {
		t.Errorf("Stdout via PATH = %q", res.Stdout)
	}
}

func TestWithPathDir(t *testing.T) {
	env := withPathDir([]string{"HOME=/root", "PATH=/usr/bin"}, "/opt/ff")
	want := "PATH=/opt/ff" + string(os.PathListSeparator) + "/usr/bin"
	if env[1] != want {
		t.Errorf("PATH = %q, want %q", env[1], want)
	}

	env = withPathDir([]string{"HOME=/root"}, "/opt/ff")
	if env[len(env)-1] != "PATH=/opt/ff" {
		t.Errorf("missing PATH not added: %v", env)
	}
}

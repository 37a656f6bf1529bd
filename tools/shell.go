package tools

import (
	"context"
	"os/exec"
	"runtime"
	"time"
)

// ShellTool executes a command string in a subprocess and returns combined
// stdout and stderr. The exit status is deliberately not surfaced: the
// model sees only the text the command produced, success or not. Surfacing
// exit codes would change the protocol the model was prompted with.
type ShellTool struct {
	Policy Policy
	// Timeout bounds a single command. Zero means no timeout.
	Timeout time.Duration
	// WorkDir is the directory commands run in. Empty means the process
	// working directory.
	WorkDir string
}

// NewShellTool creates a ShellTool with the given policy and timeout.
func NewShellTool(policy Policy, timeout time.Duration) *ShellTool {
	return &ShellTool{Policy: policy, Timeout: timeout}
}

func (t *ShellTool) Name() string { return "run_command" }

func (t *ShellTool) Description() string {
	return "Executes a shell command and returns its output."
}

func (t *ShellTool) Invoke(ctx context.Context, input string) (string, error) {
	if err := t.Policy.AllowCommand(input); err != nil {
		return "", err
	}

	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	shell, shellArg := "/bin/bash", "-c"
	if runtime.GOOS == "windows" {
		shell, shellArg = "cmd.exe", "/c"
	}

	cmd := exec.CommandContext(ctx, shell, shellArg, input)
	cmd.Dir = t.WorkDir

	// Combined output, exit status ignored.
	out, _ := cmd.CombinedOutput()
	output := string(out)

	if ctx.Err() == context.DeadlineExceeded {
		output += "\n[command timed out; partial output shown above]"
	}
	return output, nil
}

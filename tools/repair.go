package tools

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/martinemde/steploop/llm"
)

// Completer is the slice of the model client the repair tool needs.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// RepairFileTool rewrites a file based on an error message. It reads the
// current contents, asks the model for a corrected version, and writes the
// result back. Input format: filename||error message.
type RepairFileTool struct {
	Policy   Policy
	Client   Completer
	Model    string
	Provider string
}

// NewRepairFileTool creates a RepairFileTool backed by the given client.
func NewRepairFileTool(policy Policy, client Completer, provider, model string) *RepairFileTool {
	return &RepairFileTool{Policy: policy, Client: client, Provider: provider, Model: model}
}

func (t *RepairFileTool) Name() string { return "edit_file" }

func (t *RepairFileTool) Description() string {
	return "Edits the file based on an error message. Input format: filename||error_message."
}

func (t *RepairFileTool) InputFormat() string { return "filename||error_message" }

func (t *RepairFileTool) InvokeParts(ctx context.Context, filename, errMsg string) (string, error) {
	resolved, err := t.Policy.AllowPath(filename)
	if err != nil {
		return "", err
	}

	// A missing file is repaired from scratch.
	current, err := os.ReadFile(resolved)
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}

	prompt := fmt.Sprintf(
		"The following file has an error.\n\nFile: %s\n\nCurrent content:\n%s\n\nError message:\n%s\n\nRewrite the complete corrected file. Respond with only the file content, no explanations and no code fences.",
		filename, string(current), errMsg,
	)

	resp, err := t.Client.Complete(ctx, llm.Request{
		Model:    t.Model,
		Provider: t.Provider,
		Messages: []llm.Message{llm.UserMessage(prompt)},
	})
	if err != nil {
		return "", fmt.Errorf("repair request: %w", err)
	}

	fixed := stripCodeFence(strings.TrimSpace(resp.Text))
	if err := os.WriteFile(resolved, []byte(fixed), 0644); err != nil {
		return "", err
	}

	return fmt.Sprintf("File %s has been updated based on the error message.", filename), nil
}

// stripCodeFence removes a surrounding markdown fence if the model added one
// despite instructions.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

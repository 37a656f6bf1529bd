package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileTool overwrites (or creates) a file with the given content.
// Input format: filename||content.
type WriteFileTool struct {
	Policy Policy
}

// NewWriteFileTool creates a WriteFileTool with the given policy.
func NewWriteFileTool(policy Policy) *WriteFileTool {
	return &WriteFileTool{Policy: policy}
}

func (t *WriteFileTool) Name() string { return "write_file" }

func (t *WriteFileTool) Description() string {
	return "Writes code to a file. Input format: filename||content."
}

func (t *WriteFileTool) InputFormat() string { return "filename||content" }

func (t *WriteFileTool) InvokeParts(ctx context.Context, filename, content string) (string, error) {
	resolved, err := t.Policy.AllowPath(filename)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(resolved); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(resolved, []byte(content), 0644); err != nil {
		return "", err
	}

	return fmt.Sprintf("File %s updated successfully.", filename), nil
}

package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileToolRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tool := NewWriteFileTool(PermissivePolicy{WorkDir: dir})

	got, err := tool.InvokeParts(context.Background(), "main.go", "package main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "File main.go updated successfully." {
		t.Errorf("unexpected confirmation: %q", got)
	}

	data, err := os.ReadFile(filepath.Join(dir, "main.go"))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != "package main" {
		t.Errorf("unexpected file content: %q", string(data))
	}
}

func TestWriteFileToolCreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	tool := NewWriteFileTool(PermissivePolicy{WorkDir: dir})

	if _, err := tool.InvokeParts(context.Background(), "cmd/app/main.go", "package main"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cmd", "app", "main.go")); err != nil {
		t.Errorf("expected nested file to exist: %v", err)
	}
}

func TestWriteFileToolOverwrites(t *testing.T) {
	dir := t.TempDir()
	tool := NewWriteFileTool(PermissivePolicy{WorkDir: dir})
	ctx := context.Background()

	tool.InvokeParts(ctx, "a.txt", "first")
	tool.InvokeParts(ctx, "a.txt", "second")

	data, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
	if string(data) != "second" {
		t.Errorf("expected overwrite, got %q", string(data))
	}
}

func TestWriteFileToolRestrictedEscape(t *testing.T) {
	dir := t.TempDir()
	tool := NewWriteFileTool(RestrictedPolicy{Root: dir})

	_, err := tool.InvokeParts(context.Background(), "../outside.txt", "x")
	if err == nil {
		t.Fatal("expected path escape to be rejected")
	}
}

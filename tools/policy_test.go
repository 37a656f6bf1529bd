package tools

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPermissivePolicyAllowsEverything(t *testing.T) {
	p := PermissivePolicy{WorkDir: "/tmp/work"}

	if err := p.AllowCommand("rm -rf /"); err != nil {
		t.Errorf("permissive policy should allow any command: %v", err)
	}
	resolved, err := p.AllowPath("sub/file.go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved != filepath.Join("/tmp/work", "sub", "file.go") {
		t.Errorf("unexpected resolution: %q", resolved)
	}
}

func TestRestrictedPolicyDeniedPattern(t *testing.T) {
	p := RestrictedPolicy{DeniedPatterns: []string{"rm -rf"}}

	if err := p.AllowCommand("rm -rf /"); err == nil {
		t.Error("expected denied pattern to block the command")
	}
	if err := p.AllowCommand("ls -la"); err != nil {
		t.Errorf("unrelated command should pass: %v", err)
	}
}

func TestRestrictedPolicyAllowedPrefixes(t *testing.T) {
	p := RestrictedPolicy{AllowedPrefixes: []string{"go ", "ls"}}

	if err := p.AllowCommand("go test ./..."); err != nil {
		t.Errorf("prefixed command should pass: %v", err)
	}
	if err := p.AllowCommand("curl example.com"); err == nil {
		t.Error("expected non-prefixed command to be blocked")
	}
}

func TestRestrictedPolicyPathConfinement(t *testing.T) {
	dir := t.TempDir()
	p := RestrictedPolicy{Root: dir}

	resolved, err := p.AllowPath("inner/file.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(resolved, dir) {
		t.Errorf("expected path under root, got %q", resolved)
	}

	if _, err := p.AllowPath("../escape.txt"); err == nil {
		t.Error("expected relative escape to be rejected")
	}
	if _, err := p.AllowPath("/etc/passwd"); err == nil {
		t.Error("expected absolute outside path to be rejected")
	}
}

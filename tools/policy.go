package tools

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Policy is the capability gate consulted before a tool touches the shell
// or the filesystem. The default policy mirrors the source behavior: any
// command, any path. A restricted policy can be swapped in without the
// tools knowing.
type Policy interface {
	// AllowCommand returns an error if the shell command may not run.
	AllowCommand(command string) error

	// AllowPath resolves a model-supplied file path and returns an error
	// if the tool may not touch it.
	AllowPath(path string) (string, error)
}

// PermissivePolicy allows everything. Relative paths resolve against
// WorkDir when set, otherwise against the process working directory.
type PermissivePolicy struct {
	WorkDir string
}

func (p PermissivePolicy) AllowCommand(string) error { return nil }

func (p PermissivePolicy) AllowPath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if p.WorkDir != "" {
		return filepath.Join(p.WorkDir, path), nil
	}
	return filepath.Clean(path), nil
}

// RestrictedPolicy confines file operations to Root and filters shell
// commands by denied patterns and, when set, allowed prefixes.
type RestrictedPolicy struct {
	Root string
	// DeniedPatterns block any command containing one of them.
	DeniedPatterns []string
	// AllowedPrefixes, when non-empty, require the command to start with
	// one of them.
	AllowedPrefixes []string
}

func (p RestrictedPolicy) AllowCommand(command string) error {
	trimmed := strings.TrimSpace(command)
	for _, pat := range p.DeniedPatterns {
		if pat != "" && strings.Contains(trimmed, pat) {
			return fmt.Errorf("command blocked by policy: matches denied pattern %q", pat)
		}
	}
	if len(p.AllowedPrefixes) > 0 {
		for _, prefix := range p.AllowedPrefixes {
			if strings.HasPrefix(trimmed, prefix) {
				return nil
			}
		}
		return fmt.Errorf("command blocked by policy: no allowed prefix matches")
	}
	return nil
}

func (p RestrictedPolicy) AllowPath(path string) (string, error) {
	root, err := filepath.Abs(p.Root)
	if err != nil {
		return "", fmt.Errorf("resolve policy root: %w", err)
	}

	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(root, resolved)
	}
	resolved = filepath.Clean(resolved)

	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes workspace root", path)
	}
	return resolved, nil
}

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/martinemde/steploop/protocol"
)

// Tool is the common surface of every registered operation.
type Tool interface {
	Name() string
	Description() string
}

// SingleInput is implemented by tools that take their input text whole.
type SingleInput interface {
	Tool
	Invoke(ctx context.Context, input string) (string, error)
}

// PartsInput is implemented by tools whose input carries two positional
// parts joined by "||". The delimiter is not escaped: a first part that
// contains "||" cannot be expressed. That limitation is part of the wire
// contract.
type PartsInput interface {
	Tool
	InvokeParts(ctx context.Context, first, second string) (string, error)
	// InputFormat names the expected encoding, e.g. "filename||content".
	InputFormat() string
}

// Registry is a fixed name-to-tool table, read-only after construction.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates a registry holding the given tools. Later tools with
// a duplicate name replace earlier ones.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range tools {
		if _, exists := r.tools[t.Name()]; !exists {
			r.order = append(r.order, t.Name())
		}
		r.tools[t.Name()] = t
	}
	return r
}

// Resolve returns the tool registered under name.
func (r *Registry) Resolve(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Describe returns the model-facing description of every tool, in
// registration order.
func (r *Registry) Describe() []protocol.ToolDescription {
	descs := make([]protocol.ToolDescription, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		descs = append(descs, protocol.ToolDescription{Name: t.Name(), Description: t.Description()})
	}
	return descs
}

// Dispatch resolves name and invokes the tool with input. All outcomes are
// plain text: unknown tools, malformed two-part input, and tool failures
// come back as diagnostic text rather than errors, so the result can always
// be fed to the model as an observation.
func (r *Registry) Dispatch(ctx context.Context, name, input string) string {
	tool, ok := r.Resolve(name)
	if !ok {
		return fmt.Sprintf("Tool '%s' not available.", name)
	}

	var output string
	var err error

	switch t := tool.(type) {
	case PartsInput:
		first, second, found := strings.Cut(input, "||")
		if !found {
			return fmt.Sprintf("Invalid input format for %s. Expected '%s'.", name, t.InputFormat())
		}
		output, err = t.InvokeParts(ctx, strings.TrimSpace(first), strings.TrimSpace(second))
	case SingleInput:
		output, err = t.Invoke(ctx, input)
	default:
		return fmt.Sprintf("Tool '%s' not available.", name)
	}

	if err != nil {
		return fmt.Sprintf("Tool error (%s): %v", name, err)
	}
	return output
}

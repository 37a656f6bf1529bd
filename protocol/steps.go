package protocol

import (
	"encoding/json"
	"fmt"
)

// StepKind discriminates between the four step types the model may emit.
type StepKind string

const (
	StepPlan    StepKind = "plan"
	StepAction  StepKind = "action"
	StepObserve StepKind = "observe"
	StepOutput  StepKind = "output"
)

// Valid reports whether k is one of the four recognized kinds.
func (k StepKind) Valid() bool {
	switch k {
	case StepPlan, StepAction, StepObserve, StepOutput:
		return true
	}
	return false
}

// Step is one structured unit of the plan/action/observe/output protocol.
// Steps are ephemeral: they exist only within one extraction cycle and are
// never persisted.
type Step struct {
	Kind    StepKind `json:"step"`
	Content string   `json:"content,omitempty"`
	// Function and Input are set only for action steps.
	Function string `json:"function,omitempty"`
	Input    string `json:"input,omitempty"`
}

// ObservationText builds the serialized observe message the driver sends
// back to the model after a tool call.
func ObservationText(toolName, toolOutput string) string {
	obs := Step{
		Kind:    StepObserve,
		Content: fmt.Sprintf("Tool '%s' returned: %s", toolName, toolOutput),
	}
	data, _ := json.Marshal(obs)
	return string(data)
}

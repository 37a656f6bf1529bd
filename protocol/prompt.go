package protocol

import (
	"fmt"
	"strings"
)

// ToolDescription is the model-facing summary of one registered tool.
type ToolDescription struct {
	Name        string
	Description string
}

const basePrompt = `You are an AI Assistant specialized in making code changes.
You operate in the following sequence: start -> plan -> action -> observe -> output.
For a given user query and available tools, you must:
1. Start by planning your next step.
2. When ready, output an "action" step specifying a tool to call and its input.
3. Always output your message in strict JSON (one JSON object per message) with the following keys:
    - "step": either "plan", "action", "observe", or "output"
    - "content": a textual explanation (only for plan/observe/output steps)
    - "function": (only for action steps) the name of the tool to invoke.
    - "input": (only for action steps) the input parameter for the function.
Use one step per message and stop only when your output step is generated.`

// BuildSystemPrompt constructs the full protocol system prompt, including
// a description of every available tool.
func BuildSystemPrompt(tools []ToolDescription) string {
	var sb strings.Builder
	sb.WriteString(basePrompt)

	if len(tools) > 0 {
		sb.WriteString("\n\nAvailable tools:\n")
		for _, t := range tools {
			fmt.Fprintf(&sb, "- %s: %s\n", t.Name, t.Description)
		}
	}

	return sb.String()
}

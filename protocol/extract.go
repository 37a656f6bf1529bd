package protocol

import (
	"encoding/json"
)

// Extract parses raw model output text into the well-formed steps found in
// it, preserving their order of appearance.
//
// Matching is single-level: a candidate is the innermost region between a
// '{' and the next '}' with no brace in between. A step whose content field
// itself contains a brace pair is therefore corrupted or unparsable. This
// mirrors the wire contract the model is prompted with and is a documented
// structural limitation, not something to fix transparently.
//
// Candidates that fail to decode, or that decode without a recognized step
// kind, are silently skipped. An empty result means "no actionable step"
// and is the caller's signal to abandon the turn.
func Extract(text string) []Step {
	var steps []Step

	start := -1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			// A nested open brace abandons the outer candidate.
			start = i
		case '}':
			if start < 0 {
				continue
			}
			candidate := text[start : i+1]
			start = -1
			if step, ok := decodeStep(candidate); ok {
				steps = append(steps, step)
			}
		}
	}
	return steps
}

func decodeStep(candidate string) (Step, bool) {
	var step Step
	if err := json.Unmarshal([]byte(candidate), &step); err != nil {
		return Step{}, false
	}
	if !step.Kind.Valid() {
		return Step{}, false
	}
	return step, true
}

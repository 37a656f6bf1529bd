package loop

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/martinemde/steploop/llm"
)

func TestAssistantTurnSerializesUsage(t *testing.T) {
	turn := NewAssistantTurn("reply", llm.Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15})

	data, err := json.Marshal(turn)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"usage"`) {
		t.Errorf("expected usage in serialized turn, got %s", data)
	}

	var got Turn
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Usage.TotalTokens != 15 {
		t.Errorf("expected usage round-trip, got %+v", got.Usage)
	}
}

package loop

import (
	"time"

	"github.com/martinemde/steploop/llm"
)

// TurnKind discriminates between turn types.
type TurnKind string

const (
	TurnSystem      TurnKind = "system"
	TurnUser        TurnKind = "user"
	TurnAssistant   TurnKind = "assistant"
	TurnObservation TurnKind = "observation"
)

// Turn is a single entry in the conversation history.
type Turn struct {
	Kind      TurnKind  `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
	Usage     llm.Usage `json:"usage"`
}

// NewSystemTurn creates a Turn wrapping the protocol system prompt.
func NewSystemTurn(content string) Turn {
	return Turn{Kind: TurnSystem, Timestamp: time.Now(), Content: content}
}

// NewUserTurn creates a Turn wrapping user input.
func NewUserTurn(content string) Turn {
	return Turn{Kind: TurnUser, Timestamp: time.Now(), Content: content}
}

// NewAssistantTurn creates a Turn wrapping a raw model reply.
func NewAssistantTurn(content string, usage llm.Usage) Turn {
	return Turn{Kind: TurnAssistant, Timestamp: time.Now(), Content: content, Usage: usage}
}

// NewObservationTurn creates a Turn wrapping a tool observation message.
func NewObservationTurn(content string) Turn {
	return Turn{Kind: TurnObservation, Timestamp: time.Now(), Content: content}
}

// Conversation is the append-only turn history for one session. It is not
// safe for concurrent use; the owning Session serializes access.
type Conversation struct {
	turns []Turn
}

// Append adds a turn to the history.
func (c *Conversation) Append(turn Turn) {
	c.turns = append(c.turns, turn)
}

// Len returns the number of turns.
func (c *Conversation) Len() int { return len(c.turns) }

// Turns returns a copy of the turn history.
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Messages converts the turn history into LLM messages. Observation turns
// are sent as user messages so the model reads them as input for its next
// step, matching the protocol the system prompt describes.
func (c *Conversation) Messages() []llm.Message {
	messages := make([]llm.Message, 0, len(c.turns))
	for _, turn := range c.turns {
		switch turn.Kind {
		case TurnSystem:
			messages = append(messages, llm.SystemMessage(turn.Content))
		case TurnUser, TurnObservation:
			messages = append(messages, llm.UserMessage(turn.Content))
		case TurnAssistant:
			messages = append(messages, llm.AssistantMessage(turn.Content))
		}
	}
	return messages
}

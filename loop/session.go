package loop

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/martinemde/steploop/llm"
	"github.com/martinemde/steploop/protocol"
	"github.com/martinemde/steploop/tools"
)

// SessionState represents the current lifecycle state of a session.
type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateProcessing SessionState = "processing"
	StateClosed     SessionState = "closed"
)

// Recorder persists conversation turns. Implementations must tolerate
// being called once per appended turn with a monotonically increasing
// sequence number.
type Recorder interface {
	Record(sessionID string, seq int, kind, content string) error
}

// Config holds configuration for a session.
type Config struct {
	// MaxRounds caps model round trips per user query. 0 uses the default.
	MaxRounds int    `json:"max_rounds"`
	Model     string `json:"model,omitempty"`
	Provider  string `json:"provider,omitempty"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{MaxRounds: 20}
}

// Session is the conversation driver. It owns the turn history for one
// interactive session; every Ask call extends the same conversation.
type Session struct {
	id           string
	client       *llm.Client
	registry     *tools.Registry
	conversation *Conversation
	emitter      *EventEmitter
	config       Config
	recorder     Recorder
	state        SessionState
	seq          int
	mu           sync.Mutex
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder attaches a transcript recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// NewSession creates a session over the given client and tool registry.
func NewSession(client *llm.Client, registry *tools.Registry, config Config, opts ...Option) *Session {
	if config.MaxRounds <= 0 {
		config.MaxRounds = DefaultConfig().MaxRounds
	}
	sessionID := uuid.New().String()
	s := &Session{
		id:           sessionID,
		client:       client,
		registry:     registry,
		conversation: &Conversation{},
		emitter:      NewEventEmitter(sessionID, 256),
		config:       config,
		state:        StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns a copy of the conversation history.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversation.Turns()
}

// Events returns the event channel for the host application.
func (s *Session) Events() <-chan SessionEvent {
	return s.emitter.Events()
}

// Close terminates the session.
func (s *Session) Close() {
	s.mu.Lock()
	s.state = StateClosed
	s.mu.Unlock()
	s.emitter.Emit(EventSessionEnd, nil)
	s.emitter.Close()
}

// Ask processes one user query through the step protocol and returns the
// model's final answer text.
//
// Each model round trip is handled the same way: extract the step objects
// from the raw reply, surface plan and observe steps, and act on the first
// action or output step. An action dispatches exactly one tool, feeds the
// observation back as the next turn, and discards any steps the model
// batched after it, so the model always sees the real tool result before
// planning further. An output step ends the query. A reply with no
// extractable steps ends the query too; the raw text is surfaced as-is.
func (s *Session) Ask(ctx context.Context, query string) (string, error) {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return "", fmt.Errorf("session is closed")
	}
	s.state = StateProcessing
	if s.conversation.Len() == 0 {
		s.appendTurn(NewSystemTurn(protocol.BuildSystemPrompt(s.registry.Describe())))
	}
	s.appendTurn(NewUserTurn(query))
	s.mu.Unlock()

	s.emitter.Emit(EventUserInput, map[string]interface{}{"content": query})

	defer func() {
		s.mu.Lock()
		if s.state == StateProcessing {
			s.state = StateIdle
		}
		s.mu.Unlock()
	}()

	for round := 0; round < s.config.MaxRounds; round++ {
		select {
		case <-ctx.Done():
			s.emitter.Emit(EventError, map[string]interface{}{"error": ctx.Err().Error()})
			return "", ctx.Err()
		default:
		}

		s.mu.Lock()
		request := llm.Request{
			Model:    s.config.Model,
			Provider: s.config.Provider,
			Messages: s.conversation.Messages(),
		}
		s.mu.Unlock()

		response, err := s.client.Complete(ctx, request)
		if err != nil {
			s.emitter.Emit(EventError, map[string]interface{}{"error": err.Error()})
			return "", fmt.Errorf("model call: %w", err)
		}

		s.mu.Lock()
		s.appendTurn(NewAssistantTurn(response.Text, response.Usage))
		s.mu.Unlock()

		steps := protocol.Extract(response.Text)
		if len(steps) == 0 {
			// The model dropped out of the protocol. Surface the raw text
			// and give the turn back to the user rather than retrying.
			s.emitter.Emit(EventParseFailure, map[string]interface{}{"text": response.Text})
			return response.Text, nil
		}

		acted := false
		for _, step := range steps {
			switch step.Kind {
			case protocol.StepPlan:
				s.emitter.Emit(EventPlan, map[string]interface{}{"content": step.Content})
			case protocol.StepObserve:
				s.emitter.Emit(EventObservation, map[string]interface{}{"content": step.Content})
			case protocol.StepOutput:
				s.emitter.Emit(EventOutput, map[string]interface{}{"content": step.Content})
				return step.Content, nil
			case protocol.StepAction:
				s.emitter.Emit(EventAction, map[string]interface{}{
					"function": step.Function,
					"input":    step.Input,
				})
				output := s.registry.Dispatch(ctx, step.Function, step.Input)
				s.emitter.Emit(EventToolOutput, map[string]interface{}{
					"function": step.Function,
					"output":   output,
				})
				s.mu.Lock()
				s.appendTurn(NewObservationTurn(protocol.ObservationText(step.Function, output)))
				s.mu.Unlock()
				acted = true
			}
			if acted {
				// One tool call per round trip. Anything the model batched
				// after the action was speculated without the tool result.
				break
			}
		}
	}

	s.emitter.Emit(EventRoundLimit, map[string]interface{}{"rounds": s.config.MaxRounds})
	return "", fmt.Errorf("no final answer after %d model rounds", s.config.MaxRounds)
}

// appendTurn adds a turn to the conversation and records it when a recorder
// is attached. Caller holds s.mu.
func (s *Session) appendTurn(turn Turn) {
	s.conversation.Append(turn)
	if s.recorder != nil {
		s.seq++
		if err := s.recorder.Record(s.id, s.seq, string(turn.Kind), turn.Content); err != nil {
			s.emitter.Emit(EventError, map[string]interface{}{
				"error": fmt.Sprintf("transcript: %v", err),
			})
		}
	}
}

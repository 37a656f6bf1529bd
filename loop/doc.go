// Package loop drives the step-protocol conversation between a user query
// and the model. A Session owns an explicit append-only conversation, calls
// the model through the llm client, extracts protocol steps from the reply,
// dispatches at most one tool action per model round trip, and feeds the
// observation back as the next turn until the model emits an output step.
package loop

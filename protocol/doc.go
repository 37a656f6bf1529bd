// Package protocol defines the step protocol spoken between the driver and
// the model. The model is instructed to reply with brace-delimited JSON
// objects, one step per object, with keys "step", "content", and (for
// actions) "function" and "input". Extraction is deliberately best-effort:
// candidates that do not decode into a valid step are skipped, and only
// single-level brace groups are recognized.
package protocol

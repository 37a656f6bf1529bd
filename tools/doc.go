// Package tools provides the registry and the side-effecting operations the
// driver executes on the model's behalf: weather lookup, shell execution,
// file writing, and AI-assisted file repair.
//
// Tools form a closed set of concrete implementations behind small
// interfaces; the model-facing string name exists only at the dispatch
// boundary. Dispatch never returns an error: every outcome, including
// unknown tools and malformed input, comes back as observation text for the
// model to read.
package tools

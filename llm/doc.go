// Package llm provides a provider-agnostic client for the language-model
// boundary. It wraps gollm behind a small adapter interface so the rest of
// the program talks in terms of role-tagged text messages and never sees a
// provider SDK directly.
//
// The step protocol rides entirely in message text: the model is asked to
// reply with brace-delimited JSON objects, and the driver parses them out of
// the free-text reply. There is therefore no native tool-call plumbing here;
// a Request is a model name plus an ordered message list, and a Response is
// the text the model produced.
//
// # Quick Start
//
//	adapter, err := llm.NewGollmAdapter("gemini", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := llm.NewClient(llm.WithProvider("gemini", adapter))
//
//	resp, err := client.Complete(ctx, llm.Request{
//	    Model:    "gemini-2.0-flash-001",
//	    Messages: []llm.Message{llm.UserMessage("hello")},
//	})
package llm

package ai

import "context"

// Summarizer is the interface for conversation summarization.
// Implement this interface to add new AI providers.
type Summarizer interface {
	// SummarizeConversation turns raw channel messages into a short
	// natural-language summary. instruction is the active prompt content
	// (may be empty), channelName is passed as context for the model.
	SummarizeConversation(ctx context.Context, messages, instruction, channelName string) (string, error)
}

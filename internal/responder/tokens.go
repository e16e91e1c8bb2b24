package responder

import "strings"

// ApproxTokenCount estimates the token count of text when the provider
// does not report usage. Roughly 1.3 tokens per whitespace-separated word.
func ApproxTokenCount(text string) int {
	words := len(strings.Fields(text))
	return words + words/3
}

// ApproxMessagesTokenCount estimates tokens across a conversation.
func ApproxMessagesTokenCount(messages []Message) int {
	total := 0
	for _, message := range messages {
		total += ApproxTokenCount(message.Content)
	}
	return total
}

// Package chat assembles the message list sent to the completion provider.
package chat

import (
	"support-agent/internal/llm"
	"support-agent/internal/storage"
)

// BuildContext returns [system] + history (user→user, bot→assistant, order
// preserved) + the new user turn. The full history is resent on every call;
// the provider keeps no state between requests.
func BuildContext(systemPrompt string, history []storage.Message, userMessage string) []llm.Message {
	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: "system", Content: systemPrompt})
	for _, m := range history {
		role := "assistant"
		if m.Sender == storage.SenderUser {
			role = "user"
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Content})
	}
	msgs = append(msgs, llm.Message{Role: "user", Content: userMessage})
	return msgs
}

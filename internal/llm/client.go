package llm

import "context"

type Message struct {
	Role    string
	Content string
}

// Response carries the completion text and the model that produced it.
type Response struct {
	Content string
	Model   string
}

type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}

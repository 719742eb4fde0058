package llm

import (
	"context"
	"log"
)

// DefaultApology is returned when every client in the chain has failed.
const DefaultApology = "Sorry, I'm having trouble responding right now. please try again."

// Fallback tries an ordered list of clients and answers with the first usable
// completion. An exhausted chain yields the apology text with a nil error so
// the conversation can continue.
type Fallback struct {
	clients []Client
	apology string
}

func NewFallback(apology string, clients ...Client) *Fallback {
	if apology == "" {
		apology = DefaultApology
	}
	return &Fallback{clients: clients, apology: apology}
}

func (f *Fallback) Generate(ctx context.Context, messages []Message) (Response, error) {
	for _, c := range f.clients {
		resp, err := c.Generate(ctx, messages)
		if err != nil {
			log.Printf("completion attempt failed: %v", err)
			continue
		}
		if resp.Content == "" {
			log.Printf("completion attempt returned empty content (model %s)", resp.Model)
			continue
		}
		return resp, nil
	}
	return Response{Content: f.apology}, nil
}

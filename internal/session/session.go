// Package session drives one conversation from start to contact capture.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"support-agent/internal/chat"
	"support-agent/internal/extract"
	"support-agent/internal/llm"
	"support-agent/internal/storage"
)

// State is the orchestrator lifecycle position. Transitions run strictly
// forward: Initializing -> Active -> Extracting -> Closed.
type State int

const (
	StateInitializing State = iota
	StateActive
	StateExtracting
	StateClosed
)

// Completer produces the bot turn for an assembled message list. It must not
// fail on provider trouble; the fallback chain resolves that internally.
type Completer interface {
	Generate(ctx context.Context, messages []llm.Message) (llm.Response, error)
}

// Store is the storage subset the orchestrator needs.
type Store interface {
	CreateSession(ctx context.Context) (string, error)
	CloseSession(ctx context.Context, sessionID string) error
	AppendMessage(ctx context.Context, sessionID, sender, content string) error
	Messages(ctx context.Context, sessionID string) ([]storage.Message, error)
	UpsertProfile(ctx context.Context, email, fullName, phone string) (uint, error)
}

// Notifier delivers the welcome mail. Failure is soft: the orchestrator logs
// and moves on.
type Notifier interface {
	SendWelcome(ctx context.Context, email, name string) bool
}

// Outcome summarizes what a finished session produced.
type Outcome struct {
	SessionID   string
	Contact     extract.Contact
	ProfileID   uint
	WelcomeSent bool
}

var exitPhrases = map[string]struct{}{
	"quit": {},
	"exit": {},
	"bye":  {},
}

func isExitPhrase(s string) bool {
	_, ok := exitPhrases[strings.ToLower(s)]
	return ok
}

type Orchestrator struct {
	store        Store
	completer    Completer
	notifier     Notifier
	extractor    *extract.Extractor
	systemPrompt string

	state     State
	sessionID string
}

func New(store Store, completer Completer, notifier Notifier, extractor *extract.Extractor, systemPrompt string) *Orchestrator {
	return &Orchestrator{
		store:        store,
		completer:    completer,
		notifier:     notifier,
		extractor:    extractor,
		systemPrompt: systemPrompt,
		state:        StateInitializing,
	}
}

func (o *Orchestrator) State() State { return o.state }

// Run executes the whole session: prompt loop over in/out, then extraction
// over the final history. Turns are strictly sequential; one turn is fully
// persisted before the next is read. Storage errors end the session.
func (o *Orchestrator) Run(ctx context.Context, in io.Reader, out io.Writer) (Outcome, error) {
	id, err := o.store.CreateSession(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("start session: %w", err)
	}
	o.sessionID = id
	o.state = StateActive
	fmt.Fprintf(out, "[Session %s started]\n\n", id)

	scanner := bufio.NewScanner(in)
	for o.state == StateActive {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			// EOF behaves like an exit phrase
			o.state = StateExtracting
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if isExitPhrase(input) {
			fmt.Fprintln(out, "\nEnding conversation...")
			o.state = StateExtracting
			break
		}
		if err := o.handleTurn(ctx, input, out); err != nil {
			return Outcome{}, err
		}
	}
	if err := scanner.Err(); err != nil {
		return Outcome{}, fmt.Errorf("read input: %w", err)
	}

	return o.finish(ctx, out)
}

func (o *Orchestrator) handleTurn(ctx context.Context, input string, out io.Writer) error {
	if err := o.store.AppendMessage(ctx, o.sessionID, storage.SenderUser, input); err != nil {
		return fmt.Errorf("persist user message: %w", err)
	}

	history, err := o.store.Messages(ctx, o.sessionID)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	// the turn just persisted is the tail of history; the context builder
	// appends it as the new user entry
	prior := history[:len(history)-1]

	resp, err := o.completer.Generate(ctx, chat.BuildContext(o.systemPrompt, prior, input))
	if err != nil {
		return fmt.Errorf("completion: %w", err)
	}

	if err := o.store.AppendMessage(ctx, o.sessionID, storage.SenderBot, resp.Content); err != nil {
		return fmt.Errorf("persist bot message: %w", err)
	}
	fmt.Fprintf(out, "\nBot: %s\n\n", resp.Content)
	return nil
}

// finish runs extraction over the complete final history, upserts the
// profile when an email was recovered and closes the session.
func (o *Orchestrator) finish(ctx context.Context, out io.Writer) (Outcome, error) {
	fmt.Fprintln(out, "\nAnalyzing conversation for contact information...")

	history, err := o.store.Messages(ctx, o.sessionID)
	if err != nil {
		return Outcome{}, fmt.Errorf("load history for extraction: %w", err)
	}

	outcome := Outcome{SessionID: o.sessionID}
	outcome.Contact = o.extractor.FromMessages(history)

	if outcome.Contact.Email != "" {
		profileID, err := o.store.UpsertProfile(ctx, outcome.Contact.Email, outcome.Contact.Name, outcome.Contact.Phone)
		if err != nil {
			return Outcome{}, fmt.Errorf("upsert profile: %w", err)
		}
		outcome.ProfileID = profileID
		fmt.Fprintf(out, "\nProfile saved! ID: %d\n", profileID)

		if outcome.Contact.Name != "" {
			outcome.WelcomeSent = o.notifier.SendWelcome(ctx, outcome.Contact.Email, outcome.Contact.Name)
			if !outcome.WelcomeSent {
				log.Printf("welcome email to %s not delivered", outcome.Contact.Email)
			}
		}
	} else {
		fmt.Fprintln(out, "\nNo email found - profile not created.")
	}

	if err := o.store.CloseSession(ctx, o.sessionID); err != nil {
		return Outcome{}, fmt.Errorf("close session: %w", err)
	}
	o.state = StateClosed
	fmt.Fprintln(out, "\nSession complete. Goodbye!")
	return outcome, nil
}

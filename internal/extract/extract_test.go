package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"support-agent/internal/storage"
)

func newExtractor() *Extractor {
	return New("HealthBot")
}

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain address", "you can reach me at jane@example.com anytime", "jane@example.com"},
		{"mixed case kept verbatim", "write to Jane.Doe+work@Example.COM please", "Jane.Doe+work@Example.COM"},
		{"first of several", "either a@one.com or b@two.com", "a@one.com"},
		{"no at sign", "there is no address here", ""},
		{"bare at is not enough", "meet me @ noon", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, newExtractor().Extract(tt.text).Email)
		})
	}
}

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"dashed", "call me at 123-456-7890", "123-456-7890"},
		{"parenthesized area code", "my number is (123) 456-7890", "(123) 456-7890"},
		{"dotted", "try 123.456.7890 after five", "123.456.7890"},
		{"seven digit run", "dial 5551234 locally", "5551234"},
		{"country code", "+1 123-456-7890 works too", "+1 123-456-7890"},
		{"no digits", "no number in here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, newExtractor().Extract(tt.text).Phone)
		})
	}
}

// The phone pattern is permissive on purpose and will pick up unrelated
// digit runs embedded in chat text.
func TestExtractPhoneMatchesUnrelatedDigits(t *testing.T) {
	got := newExtractor().Extract("my order id is 20260915").Phone
	require.Equal(t, "20260915", got)
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"cue phrase", "Hi, my name is jane doe.", "Jane Doe"},
		{"contraction cue", "Hi, I'm Bob", "Bob"},
		{"call me cue", "please call me Anna Smith", "Anna Smith"},
		{"trailing cue", "Jane Doe is my name", "Jane Doe"},
		{"single word", "Hello, this is Omar.", "Omar"},
		{"no cue", "I would like to book a consultation", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, newExtractor().Extract(tt.text).Name)
		})
	}
}

func TestNameCuePhraseTakesPriority(t *testing.T) {
	got := newExtractor().Extract("my name is John Smith and Alice Jones is my name").Name
	require.Equal(t, "John Smith", got)
}

func TestNameAgentGuard(t *testing.T) {
	// the only candidate is the agent's own name, any letter case
	got := newExtractor().Extract("Hello! I'm healthbot. How can I help?").Name
	require.Equal(t, "", got)
}

func TestNameAgentGuardFallsThrough(t *testing.T) {
	got := newExtractor().Extract("Hello! I'm HealthBot. Jane Doe is my name.").Name
	require.Equal(t, "Jane Doe", got)
}

func TestFromMessagesJoinsInOrder(t *testing.T) {
	history := []storage.Message{
		{Sender: storage.SenderUser, Content: "Hi, I'm Jane Doe"},
		{Sender: storage.SenderBot, Content: "Nice to meet you! How can I help?"},
		{Sender: storage.SenderUser, Content: "my email is jane@example.com"},
	}

	c := newExtractor().FromMessages(history)
	require.Equal(t, "jane@example.com", c.Email)
	require.Equal(t, "Jane Doe", c.Name)
	require.Equal(t, "", c.Phone)
}

func TestExtractIsIdempotent(t *testing.T) {
	text := "Hi, I'm Jane Doe, my email is jane@example.com, phone 123-456-7890"
	first := newExtractor().Extract(text)
	second := newExtractor().Extract(text)
	require.Equal(t, first, second)
}

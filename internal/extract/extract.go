// Package extract recovers structured contact data from raw conversation
// text using ordered pattern rules. No LLM involved: the rules are plain
// regexes evaluated in priority order, first match wins.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"support-agent/internal/storage"
)

// Contact is the structured result of a sweep over session text.
// Empty fields mean no match; extraction never fails.
type Contact struct {
	Email string
	Phone string
	Name  string
}

var (
	emailPattern = regexp.MustCompile(`(?i)[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Deliberately loose: covers 123-456-7890, (123) 456-7890, 123.456.7890,
	// 1234567890 and optional 1-2 digit country codes. Unrelated 7+ digit
	// runs can match too; the result is a hint, not a validated number.
	phonePattern = regexp.MustCompile(`(\+?\d{1,2}\s?)?(\(?\d{3}\)?[\s.-]?)?\d{3}[\s.-]?\d{4}`)
)

// nameRule is one cue pattern with the capture group holding the candidate
// name. Rules are tried in order; within a rule only the first match in the
// text is considered.
type nameRule struct {
	re    *regexp.Regexp
	group int
}

var nameRules = []nameRule{
	// "my name is Jane Doe", "I'm Jane", "this is Jane", "call me Jane"
	{re: regexp.MustCompile(`(?i)(?:my name is| i'm| i am| this is| call me)\s+([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)`), group: 1},
	// "Jane Doe is my name"
	{re: regexp.MustCompile(`(?i)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s+is my name`), group: 1},
}

// Extractor applies the rule set. It knows the agent's own name so that the
// model echoing it back into history is never misread as the customer.
type Extractor struct {
	agentName string
}

func New(agentName string) *Extractor {
	return &Extractor{agentName: agentName}
}

// FromMessages runs extraction over a full session history, sender-agnostic,
// contents joined in stored order.
func (e *Extractor) FromMessages(history []storage.Message) Contact {
	parts := make([]string, 0, len(history))
	for _, m := range history {
		parts = append(parts, m.Content)
	}
	return e.Extract(strings.Join(parts, " "))
}

// Extract is a pure function of its input text.
func (e *Extractor) Extract(text string) Contact {
	return Contact{
		Email: emailPattern.FindString(text),
		Phone: phonePattern.FindString(text),
		Name:  e.extractName(text),
	}
}

func (e *Extractor) extractName(text string) string {
	for _, r := range nameRules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := titleCase(m[r.group])
		if strings.EqualFold(name, e.agentName) {
			// agent-name echo; fall through to the next rule
			continue
		}
		return name
	}
	return ""
}

// titleCase capitalizes the first letter of each word and lowercases the
// rest ("jane doe" -> "Jane Doe").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

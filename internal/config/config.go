package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// Completion provider (Groq exposes an OpenAI-compatible API)
	GroqAPIKey    string `env:"GROQ_API_KEY"`
	GroqBaseURL   string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	Model         string `env:"AI_MODEL" envDefault:"llama-3.1-8b-instant"`
	ModelFallback string `env:"AI_MODEL_FALLBACK" envDefault:"llama-3.1-70b-versatile"`

	// Request bounds
	MaxTokens      int           `env:"AI_MAX_TOKENS" envDefault:"500"`
	Temperature    float32       `env:"AI_TEMPERATURE" envDefault:"0.7"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	// Agent persona
	AgentName        string `env:"AGENT_NAME" envDefault:"HealthBot"`
	SystemPromptPath string `env:"SYSTEM_PROMPT_PATH"`

	// Storage
	DatabasePath string `env:"DATABASE_PATH" envDefault:"ai_agent.db"`

	// Email provider (Resend)
	ResendAPIKey  string `env:"RESEND_API_KEY"`
	ResendBaseURL string `env:"RESEND_BASE_URL" envDefault:"https://api.resend.com"`
	FromEmail     string `env:"FROM_EMAIL" envDefault:"onboarding@resend.com"`

	// Reminder job schedule (cron expression, UTC)
	ReminderCron string `env:"REMINDER_CRON" envDefault:"0 9 * * *"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

// DefaultSystemPrompt builds the agent instruction used when no prompt file
// is configured.
func DefaultSystemPrompt(agentName string) string {
	return fmt.Sprintf(`You are a helpful customer support agent named %s for a healthcare company.
Your goals:
1. Answer questions about services.
2. Collect contact information (name, email, phone).
3. Help schedule consultations.
Be professional, friendly, and HIPAA-conscious - never ask for medical details.`, agentName)
}

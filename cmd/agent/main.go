package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"support-agent/internal/config"
	"support-agent/internal/extract"
	"support-agent/internal/llm"
	"support-agent/internal/notify"
	"support-agent/internal/session"
	"support-agent/internal/storage"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}

	primary := llm.NewOpenAI(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.Model, cfg.MaxTokens, cfg.Temperature, cfg.RequestTimeout)
	secondary := llm.NewOpenAI(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.ModelFallback, cfg.MaxTokens, cfg.Temperature, cfg.RequestTimeout)
	completer := llm.NewFallback(llm.DefaultApology, primary, secondary)

	notifier := notify.NewClient(cfg.ResendAPIKey, cfg.ResendBaseURL, cfg.FromEmail, cfg.RequestTimeout)

	orch := session.New(store, completer, notifier, extract.New(cfg.AgentName), systemPrompt(cfg))

	printBanner()
	if _, err := orch.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
		log.Fatalf("session failed: %v", err)
	}
}

func printBanner() {
	line := strings.Repeat("=", 50)
	fmt.Println(line)
	fmt.Println("AI Customer Support Agent")
	fmt.Println("Type 'quit' to exit.")
	fmt.Println(line)
	fmt.Println()
}

func systemPrompt(cfg *config.Config) string {
	if cfg.SystemPromptPath == "" {
		return config.DefaultSystemPrompt(cfg.AgentName)
	}
	data, err := os.ReadFile(cfg.SystemPromptPath)
	if err != nil {
		log.Printf("system prompt file not found or unreadable at %s: %v", cfg.SystemPromptPath, err)
		return config.DefaultSystemPrompt(cfg.AgentName)
	}
	return string(data)
}

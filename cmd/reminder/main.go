package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"support-agent/internal/config"
	"support-agent/internal/notify"
	"support-agent/internal/reminder"
	"support-agent/internal/storage"
)

func main() {
	watch := flag.Bool("watch", false, "keep running and fire the job on the configured cron schedule")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}

	sender := notify.NewClient(cfg.ResendAPIKey, cfg.ResendBaseURL, cfg.FromEmail, cfg.RequestTimeout)
	job := reminder.NewJob(store, sender)

	if !*watch {
		if _, _, err := job.Run(context.Background()); err != nil {
			log.Fatalf("reminder job failed: %v", err)
		}
		return
	}

	sched := reminder.NewScheduler(job, cfg.ReminderCron)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	sched.Stop()
}

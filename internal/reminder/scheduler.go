package reminder

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the job repeatedly on a cron expression (UTC).
type Scheduler struct {
	cron   *cron.Cron
	job    *Job
	spec   string
	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler(job *Job, spec string) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		job:    job,
		spec:   spec,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if _, _, err := s.job.Run(s.ctx); err != nil {
			log.Printf("scheduled reminder job failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("reminder scheduler started (cron %q, UTC)", s.spec)
	return nil
}

// Stop waits for a job in flight to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cancel()
	log.Printf("reminder scheduler stopped")
}

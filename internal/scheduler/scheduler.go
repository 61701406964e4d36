package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/plantcare-engine/internal/weather"
)

// Fetcher refreshes stored weather for one location.
type Fetcher interface {
	FetchAndStore(ctx context.Context, loc weather.Location) error
}

// Reevaluator re-plans pending reminders against the latest weather.
type Reevaluator interface {
	Reevaluate() int
}

// Scheduler periodically fetches weather for configured locations and
// re-plans pending watering reminders.
type Scheduler struct {
	scheduler *gocron.Scheduler
	fetcher   Fetcher
	locations []weather.Location
	interval  time.Duration

	reminders        Reevaluator
	reminderInterval time.Duration
}

// New creates a new Scheduler.
func New(locations []weather.Location, interval time.Duration, fetcher Fetcher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		fetcher:   fetcher,
		locations: locations,
		interval:  interval,
	}
}

// WithReminders adds the reminder re-evaluation job.
func (s *Scheduler) WithReminders(r Reevaluator, interval time.Duration) *Scheduler {
	s.reminders = r
	s.reminderInterval = interval
	return s
}

// Start schedules the periodic jobs and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("scheduler: no locations configured; skipping weather fetch job")
	} else {
		if _, err := s.scheduler.Every(minutes(s.interval, 15)).Minutes().Do(s.fetchAll); err != nil {
			return err
		}
	}

	if s.reminders != nil {
		// Reminders are re-planned after the fetch job's first run has had a chance to land.
		if _, err := s.scheduler.Every(minutes(s.reminderInterval, 60)).Minutes().WaitForSchedule().Do(s.reevaluate); err != nil {
			return err
		}
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) fetchAll() {
	log.Println("scheduler: running weather fetch job")

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func(loc weather.Location) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := s.fetcher.FetchAndStore(ctx, loc); err != nil {
				log.Printf("scheduler: fetch failed for %s: %v", loc.Key(), err)
			}
		}(loc)
	}
	wg.Wait()
	log.Println("scheduler: completed weather fetch job")
}

func (s *Scheduler) reevaluate() {
	changed := s.reminders.Reevaluate()
	log.Printf("scheduler: re-evaluated reminders, %d moved", changed)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func minutes(d time.Duration, def int) int {
	m := int(d.Minutes())
	if m <= 0 {
		return def
	}
	return m
}

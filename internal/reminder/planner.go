// Package reminder keeps watering reminders and re-plans them as the weather
// changes.
package reminder

import (
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/plantcare-engine/internal/care"
	"github.com/i474232898/plantcare-engine/internal/metrics"
	"github.com/i474232898/plantcare-engine/internal/species"
	"github.com/i474232898/plantcare-engine/internal/weather"
)

var (
	// ErrNotFound is returned when a reminder id is unknown.
	ErrNotFound = errors.New("reminder not found")
	// ErrAlreadyDone is returned when completing a reminder twice.
	ErrAlreadyDone = errors.New("reminder already completed")
)

// Interval inputs used by Next when no weather is stored for the plant.
// 20°C and 50% leave the base interval untouched.
const (
	neutralTemperature = 20.0
	neutralHumidity    = 50.0
)

// Plant identifies what a reminder is for.
type Plant struct {
	ID          string           `json:"plantId" validate:"required"`
	Species     string           `json:"species" validate:"required"`
	Environment care.Environment `json:"environment" validate:"required,oneof=indoor outdoor"`
	Location    weather.Location `json:"location"`
}

// Reminder is one planned watering.
type Reminder struct {
	ID          string           `json:"id"`
	PlantID     string           `json:"plantId"`
	Species     string           `json:"species"`
	Environment care.Environment `json:"environment"`
	Location    weather.Location `json:"location"`

	// ScheduledDate is what the user asked for; DueDate is after adjustment.
	ScheduledDate time.Time               `json:"scheduledDate"`
	DueDate       time.Time               `json:"dueDate"`
	Adjustment    care.WateringAdjustment `json:"adjustment"`

	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (r Reminder) plant() Plant {
	return Plant{ID: r.PlantID, Species: r.Species, Environment: r.Environment, Location: r.Location}
}

// WeatherSource provides the latest stored snapshot for a location.
type WeatherSource interface {
	GetLatest(loc weather.Location) (weather.WeatherSnapshot, error)
}

// ProfileSource resolves species names; it never fails.
type ProfileSource interface {
	Profile(name string) species.Profile
}

// Planner is a concurrency-safe in-memory reminder store.
type Planner struct {
	mu sync.RWMutex

	reminders map[string]*Reminder
	byPlant   map[string][]string

	profiles ProfileSource
	weather  WeatherSource
	prefs    care.Preferences

	now func() time.Time
}

// NewPlanner creates a Planner. weather may be nil, in which case every
// adjustment degrades to "water as scheduled".
func NewPlanner(profiles ProfileSource, ws WeatherSource, prefs care.Preferences) *Planner {
	return &Planner{
		reminders: make(map[string]*Reminder),
		byPlant:   make(map[string][]string),
		profiles:  profiles,
		weather:   ws,
		prefs:     prefs,
		now:       time.Now,
	}
}

func (p *Planner) latest(loc weather.Location) *weather.WeatherSnapshot {
	if p.weather == nil || loc.City == "" {
		return nil
	}
	snap, err := p.weather.GetLatest(loc)
	if err != nil {
		return nil
	}
	return &snap
}

func (p *Planner) adjust(plant Plant, date time.Time) care.WateringAdjustment {
	profile := p.profiles.Profile(plant.Species)
	prefs := p.prefs
	adj := care.Evaluate(care.AdjustmentInput{
		Profile:       &profile,
		Species:       plant.Species,
		Environment:   plant.Environment,
		Weather:       p.latest(plant.Location),
		ScheduledDate: date,
		Preferences:   &prefs,
	})
	metrics.RecordAdjustment(adj.ShouldSkip, adj.ShouldIncrease, adj.Reason)
	return adj
}

// Schedule stores a reminder for plant on date. A rain skip moves the due date
// to the adjusted next watering date.
func (p *Planner) Schedule(plant Plant, date time.Time) (Reminder, error) {
	adj := p.adjust(plant, date)

	r := &Reminder{
		ID:            uuid.NewString(),
		PlantID:       plant.ID,
		Species:       plant.Species,
		Environment:   plant.Environment,
		Location:      plant.Location,
		ScheduledDate: date,
		DueDate:       adj.NextWateringDate,
		Adjustment:    adj,
		CreatedAt:     p.now().UTC(),
	}

	p.mu.Lock()
	p.reminders[r.ID] = r
	p.byPlant[plant.ID] = append(p.byPlant[plant.ID], r.ID)
	p.mu.Unlock()

	metrics.RemindersScheduledTotal.Inc()
	log.Printf("reminder: scheduled %s for plant %s due %s (%s)", r.ID, plant.ID, r.DueDate.Format(time.DateOnly), adj.Reason)
	return *r, nil
}

// ScheduleFunc binds Schedule to plant so it can back care.Accept.
func (p *Planner) ScheduleFunc(plant Plant) care.ScheduleFunc {
	return func(date time.Time) error {
		_, err := p.Schedule(plant, date)
		return err
	}
}

// Next schedules the watering after lastWatered using the plant's baseline
// interval under the latest stored weather.
func (p *Planner) Next(plant Plant, lastWatered time.Time) (Reminder, error) {
	profile := p.profiles.Profile(plant.Species)

	temp, humidity := neutralTemperature, neutralHumidity
	if w := p.latest(plant.Location); w != nil {
		temp, humidity = w.Temperature, w.Humidity
	}
	days, _ := care.CalculateInterval(&profile, temp, humidity, plant.Environment.IsIndoor())

	return p.Schedule(plant, lastWatered.AddDate(0, 0, days))
}

// Complete marks a reminder done at wateredAt and schedules the next one.
func (p *Planner) Complete(id string, wateredAt time.Time) (Reminder, error) {
	p.mu.Lock()
	r, ok := p.reminders[id]
	if !ok {
		p.mu.Unlock()
		return Reminder{}, ErrNotFound
	}
	if r.CompletedAt != nil {
		p.mu.Unlock()
		return Reminder{}, ErrAlreadyDone
	}
	done := wateredAt.UTC()
	r.CompletedAt = &done
	plant := r.plant()
	p.mu.Unlock()

	return p.Next(plant, wateredAt)
}

// Get returns a reminder by id.
func (p *Planner) Get(id string) (Reminder, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	r, ok := p.reminders[id]
	if !ok {
		return Reminder{}, ErrNotFound
	}
	return *r, nil
}

// List returns a plant's reminders ordered by due date.
func (p *Planner) List(plantID string) []Reminder {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := p.byPlant[plantID]
	out := make([]Reminder, 0, len(ids))
	for _, id := range ids {
		out = append(out, *p.reminders[id])
	}
	sortByDue(out)
	return out
}

// Pending returns uncompleted reminders whose scheduled date is today or later.
func (p *Planner) Pending() []Reminder {
	cutoff := p.now().UTC().Truncate(24 * time.Hour)

	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []Reminder
	for _, r := range p.reminders {
		if r.CompletedAt == nil && !r.ScheduledDate.Before(cutoff) {
			out = append(out, *r)
		}
	}
	sortByDue(out)
	return out
}

// Reevaluate re-runs the adjustment for every pending reminder against the
// latest weather and returns how many changed due date.
func (p *Planner) Reevaluate() int {
	changed := 0
	for _, r := range p.Pending() {
		adj := p.adjust(r.plant(), r.ScheduledDate)

		p.mu.Lock()
		cur, ok := p.reminders[r.ID]
		if ok && cur.CompletedAt == nil {
			if !cur.DueDate.Equal(adj.NextWateringDate) {
				changed++
				log.Printf("reminder: %s due date moved to %s (%s)", cur.ID, adj.NextWateringDate.Format(time.DateOnly), adj.Reason)
			}
			cur.DueDate = adj.NextWateringDate
			cur.Adjustment = adj
		}
		p.mu.Unlock()
	}
	return changed
}

func sortByDue(rs []Reminder) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].DueDate.Equal(rs[j].DueDate) {
			return rs[i].CreatedAt.Before(rs[j].CreatedAt)
		}
		return rs[i].DueDate.Before(rs[j].DueDate)
	})
}

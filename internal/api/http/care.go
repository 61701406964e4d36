package httpapi

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/plantcare-engine/internal/care"
	"github.com/i474232898/plantcare-engine/internal/metrics"
	"github.com/i474232898/plantcare-engine/internal/reminder"
	"github.com/i474232898/plantcare-engine/internal/species"
	"github.com/i474232898/plantcare-engine/internal/weather"
)

// careRequest is the part every care endpoint shares. Weather is taken from
// the inline object when present, else from the latest stored snapshot for
// Location.
type careRequest struct {
	Species     string                   `json:"species" validate:"required"`
	Environment care.Environment         `json:"environment" validate:"required,oneof=indoor outdoor"`
	Location    *weather.Location        `json:"location,omitempty"`
	Weather     *weather.WeatherSnapshot `json:"weather,omitempty"`
}

type timelineRequest struct {
	careRequest
	LastWatered time.Time `json:"lastWatered" validate:"required"`
	HorizonDays int       `json:"horizonDays" validate:"omitempty,gte=1,lte=7"`
	UseForecast bool      `json:"useForecast"`
}

type adjustmentRequest struct {
	careRequest
	ScheduledDate time.Time         `json:"scheduledDate" validate:"required"`
	Preferences   *care.Preferences `json:"preferences,omitempty"`
}

type recommendationRequest struct {
	timelineRequest
	GrowingMethod care.GrowingMethod `json:"growingMethod"`
}

type acceptRequest struct {
	Recommendation care.Recommendation `json:"recommendation"`
	Plant          reminder.Plant      `json:"plant"`
}

type completeRequest struct {
	WateredAt *time.Time `json:"wateredAt,omitempty"`
}

func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func (h *handlers) profile(name string) *species.Profile {
	p := h.Species.Profile(name)
	return &p
}

// resolveWeather returns nil when no weather can be found; the engine degrades.
func (h *handlers) resolveWeather(op string, req careRequest) *weather.WeatherSnapshot {
	if req.Weather != nil {
		return req.Weather
	}
	if req.Location != nil && h.Weather != nil {
		snap, err := h.Weather.GetLatest(*req.Location)
		if err == nil {
			return &snap
		}
	}
	metrics.RecordDegraded(op)
	return nil
}

func (h *handlers) simulate(c *fiber.Ctx, req timelineRequest, p *species.Profile, w *weather.WeatherSnapshot, now time.Time) []care.MoistureDataPoint {
	horizon := req.HorizonDays
	if horizon == 0 {
		horizon = care.DefaultHorizonDays
	}

	var points []care.MoistureDataPoint
	if req.UseForecast && req.Location != nil && h.Weather != nil {
		forecast, err := h.Weather.GetForecast(c.UserContext(), *req.Location, horizon)
		if err != nil {
			log.Printf("api: forecast unavailable for %s, using current weather: %v", req.Location.Key(), err)
		} else {
			points = care.SimulateForecast(p, forecast, req.LastWatered, req.Environment, horizon, now)
		}
	}
	if points == nil {
		points = care.Simulate(p, w, req.LastWatered, req.Environment, horizon, now)
	}
	if points == nil {
		points = []care.MoistureDataPoint{}
	}
	return points
}

func (h *handlers) interval(c *fiber.Ctx) error {
	var req careRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p := h.profile(req.Species)
	w := h.resolveWeather("interval", req)

	var days *int
	if n, ok := care.IntervalFor(p, w, req.Environment); ok {
		days = &n
	}

	return c.JSON(fiber.Map{
		"species":         p.ScientificName,
		"fallbackProfile": p.Fallback,
		"intervalDays":    days,
	})
}

func (h *handlers) timeline(c *fiber.Ctx) error {
	var req timelineRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p := h.profile(req.Species)
	w := h.resolveWeather("timeline", req.careRequest)

	return c.JSON(fiber.Map{
		"species":         p.ScientificName,
		"fallbackProfile": p.Fallback,
		"timeline":        h.simulate(c, req, p, w, h.Now()),
	})
}

func (h *handlers) adjustment(c *fiber.Ctx) error {
	var req adjustmentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	prefs := req.Preferences
	if prefs == nil {
		prefs = &h.Preferences
	}

	adj := care.Evaluate(care.AdjustmentInput{
		Profile:       h.profile(req.Species),
		Species:       req.Species,
		Environment:   req.Environment,
		Weather:       h.resolveWeather("adjustment", req.careRequest),
		ScheduledDate: req.ScheduledDate,
		Preferences:   prefs,
	})
	metrics.RecordAdjustment(adj.ShouldSkip, adj.ShouldIncrease, adj.Reason)

	return c.JSON(adj)
}

func (h *handlers) recommendation(c *fiber.Ctx) error {
	var req recommendationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	now := h.Now()
	p := h.profile(req.Species)
	w := h.resolveWeather("recommendation", req.careRequest)
	points := h.simulate(c, req.timelineRequest, p, w, now)

	rec := care.Recommend(care.RecommendationInput{
		Timeline:      points,
		Profile:       p,
		Weather:       w,
		LastWatered:   req.LastWatered,
		Environment:   req.Environment,
		GrowingMethod: req.GrowingMethod,
		Now:           now,
	})
	metrics.RecordRecommendation(string(rec.Type), string(rec.Severity))

	return c.JSON(fiber.Map{
		"recommendation": rec,
		"timeline":       points,
	})
}

func (h *handlers) accept(c *fiber.Ctx) error {
	var req acceptRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if req.Recommendation.Type == "" {
		return fiber.NewError(fiber.StatusBadRequest, "recommendation type is required")
	}

	fb, err := care.Accept(req.Recommendation, h.Reminders.ScheduleFunc(req.Plant))
	if err != nil {
		log.Printf("api: scheduling watering for plant %s failed: %v", req.Plant.ID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to schedule watering")
	}

	return c.JSON(fiber.Map{
		"feedback":  fb,
		"reminders": h.Reminders.List(req.Plant.ID),
	})
}

func (h *handlers) listReminders(c *fiber.Ctx) error {
	plantID := c.Query("plantId")
	if plantID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "plantId query parameter is required")
	}

	return c.JSON(fiber.Map{
		"plantId":   plantID,
		"reminders": h.Reminders.List(plantID),
	})
}

func (h *handlers) completeReminder(c *fiber.Ctx) error {
	var req completeRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &req); err != nil {
			return err
		}
	}

	wateredAt := h.Now()
	if req.WateredAt != nil {
		wateredAt = *req.WateredAt
	}

	next, err := h.Reminders.Complete(c.Params("id"), wateredAt)
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case errors.Is(err, reminder.ErrAlreadyDone):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to complete reminder")
	}

	return c.JSON(fiber.Map{"next": next})
}

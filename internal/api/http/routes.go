package httpapi

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/plantcare-engine/internal/care"
	"github.com/i474232898/plantcare-engine/internal/reminder"
	"github.com/i474232898/plantcare-engine/internal/species"
	"github.com/i474232898/plantcare-engine/internal/store"
	"github.com/i474232898/plantcare-engine/internal/weather"
)

var validate = validator.New()

// Deps are the collaborators behind the HTTP API. Weather and Reminders may be
// nil; care endpoints then run without stored weather and reminder routes are
// not registered.
type Deps struct {
	Weather     *weather.Service
	Species     *species.Store
	Reminders   *reminder.Planner
	Preferences care.Preferences
	Now         func() time.Time
}

type handlers struct {
	Deps
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handlers{Deps: d}

	v1 := app.Group("/api/v1")

	if d.Weather != nil {
		v1.Get("/weather/current", h.currentWeather)
		v1.Get("/weather/history", h.weatherHistory)
		v1.Get("/weather/forecast", h.weatherForecast)
	}

	v1.Get("/species", h.listSpecies)
	v1.Get("/species/:name", h.getSpecies)

	v1.Post("/care/interval", h.interval)
	v1.Post("/care/timeline", h.timeline)
	v1.Post("/care/adjustment", h.adjustment)
	v1.Post("/care/recommendation", h.recommendation)

	if d.Reminders != nil {
		v1.Post("/care/recommendation/accept", h.accept)
		v1.Get("/reminders", h.listReminders)
		v1.Post("/reminders/:id/complete", h.completeReminder)
	}
}

func (h *handlers) currentWeather(c *fiber.Ctx) error {
	locReq, err := parseLocationQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	loc := locReq.toLocation()
	snapshot, err := h.Weather.GetLatest(loc)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no weather data for requested location")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
	}

	return c.JSON(snapshot)
}

func (h *handlers) weatherHistory(c *fiber.Ctx) error {
	var req historyQuery
	if err := req.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	loc := req.Location.toLocation()
	snapshots, err := h.Weather.GetRange(loc, req.From, req.To)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather history")
	}

	return c.JSON(fiber.Map{
		"location":  loc,
		"from":      req.From,
		"to":        req.To,
		"snapshots": snapshots,
	})
}

func (h *handlers) weatherForecast(c *fiber.Ctx) error {
	var req forecastQuery
	if err := req.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	loc := req.Location.toLocation()
	forecast, err := h.Weather.GetForecast(c.UserContext(), loc, req.Days)
	if err != nil {
		if errors.Is(err, weather.ErrNoForecast) {
			return fiber.NewError(fiber.StatusServiceUnavailable, "no forecast available for requested location")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch forecast")
	}

	return c.JSON(fiber.Map{
		"location": loc,
		"days":     req.Days,
		"forecast": forecast,
	})
}

func (h *handlers) listSpecies(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"species": h.Species.Names()})
}

// getSpecies never 404s: unknown names come back as the flagged fallback profile.
func (h *handlers) getSpecies(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid species name")
	}
	return c.JSON(h.Species.Profile(name))
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string `validate:"required"`
	Country string `validate:"required"`
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		City:    l.City,
		Country: l.Country,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.City = c.Query("city")
	q.Country = c.Query("country")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location locationQuery
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	Location locationQuery
	Days     int `validate:"required,gte=1,lte=7"`
}

func (f *forecastQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	f.Location = loc

	daysStr := c.Query("days")
	if daysStr == "" {
		return errors.New("days query parameter is required")
	}
	days, err := strconv.Atoi(daysStr)
	if err != nil {
		return errors.New("days must be an integer")
	}
	f.Days = days
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}

// Package httpapi wires the HTTP surface of the planner service.
package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tzapp/weather-planner/internal/calendar"
	"github.com/tzapp/weather-planner/internal/chat"
	"github.com/tzapp/weather-planner/internal/planner"
	"github.com/tzapp/weather-planner/internal/store"
	"github.com/tzapp/weather-planner/internal/weather"
)

var validate = validator.New()

// WeatherService is the slice of the weather service the API consumes.
type WeatherService interface {
	WeatherForDate(ctx context.Context, lat, lon float64, date time.Time) (weather.NormalizedWeatherData, error)
	MonthSummaries(ctx context.Context, lat, lon float64, year int, month time.Month) ([]weather.NormalizedWeatherData, error)
	FiveDayForecast(ctx context.Context, lat, lon float64) ([]weather.ForecastData, error)
	Now() time.Time
}

// NameResolver resolves display names for coordinates.
type NameResolver interface {
	DisplayName(lat, lon float64, fallbackCityName string) string
}

// ChatBackend is the proxied chat session surface.
type ChatBackend interface {
	List(ctx context.Context) ([]chat.Session, error)
	Save(ctx context.Context, sessionID, title string) (chat.SavedRef, error)
	Load(ctx context.Context, chatID string) (chat.Session, error)
	Delete(ctx context.Context, chatID string) error
	Rename(ctx context.Context, chatID, title string) (chat.SavedRef, error)
}

// ClientStore is the persisted client state surface.
type ClientStore interface {
	SaveLocation(store.SavedLocation)
	Location() (store.SavedLocation, error)
	RemoveLocation()
	SaveProfile(store.UserProfile)
	Profile() store.UserProfile
	SaveChatIndex(store.ChatIndex)
	ChatIndex() (store.ChatIndex, error)
	RemoveChatIndex()
}

// Deps bundles everything the routes need.
type Deps struct {
	Weather WeatherService
	Names   NameResolver
	Chat    ChatBackend
	Store   ClientStore
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		coords, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		data, err := deps.Weather.WeatherForDate(c.Context(), coords.Lat, coords.Lon, deps.Weather.Now())
		if err != nil {
			return upstreamError(err)
		}
		return c.JSON(data)
	})

	v1.Get("/weather/date", func(c *fiber.Ctx) error {
		coords, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		date, err := parseDateQuery(c, deps.Weather.Now().Location())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		data, err := deps.Weather.WeatherForDate(c.Context(), coords.Lat, coords.Lon, date)
		if err != nil {
			return upstreamError(err)
		}
		return c.JSON(data)
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		coords, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		forecast, err := deps.Weather.FiveDayForecast(c.Context(), coords.Lat, coords.Lon)
		if err != nil {
			return upstreamError(err)
		}
		return c.JSON(fiber.Map{"forecast": forecast})
	})

	v1.Get("/planner/events", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"events": planner.Profiles})
	})

	v1.Get("/planner/best-days", func(c *fiber.Ctx) error {
		var req plannerQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		profile, ok := planner.ProfileByID(req.Event)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "unknown event type: "+req.Event)
		}

		summaries, err := deps.Weather.MonthSummaries(c.Context(), req.Lat, req.Lon, req.Year, time.Month(req.Month))
		if err != nil {
			return upstreamError(err)
		}

		days := make([]planner.DayConditions, 0, len(summaries))
		for _, s := range summaries {
			if day, ok := planner.FromNormalized(s); ok {
				days = append(days, day)
			}
		}

		return c.JSON(fiber.Map{
			"event":   profile.ID,
			"year":    req.Year,
			"month":   req.Month,
			"topDays": planner.RankDays(days, profile.Criteria),
		})
	})

	v1.Get("/calendar/grid", func(c *fiber.Ctx) error {
		var req monthQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		grid := calendar.MonthGrid(req.Year, time.Month(req.Month))
		days := make([]string, len(grid))
		for i, d := range grid {
			days[i] = weather.FormatDate(d)
		}
		return c.JSON(fiber.Map{
			"year":  req.Year,
			"month": req.Month,
			"days":  days,
		})
	})

	v1.Get("/calendar/months", func(c *fiber.Ctx) error {
		year, err := parseIntQuery(c, "year", 2000, 2100)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		selected := calendar.MonthYear{}
		if c.Query("selectedMonth") != "" && c.Query("selectedYear") != "" {
			m, err := parseIntQuery(c, "selectedMonth", 1, 12)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			y, err := parseIntQuery(c, "selectedYear", 2000, 2100)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			selected = calendar.MonthYear{Year: y, Month: time.Month(m)}
		}

		months := calendar.MonthsForYear(year, deps.Weather.Now(), selected, calendar.DefaultHorizonMonths)
		return c.JSON(fiber.Map{"year": year, "months": months})
	})

	v1.Get("/location/name", func(c *fiber.Ctx) error {
		coords, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		name := deps.Names.DisplayName(coords.Lat, coords.Lon, c.Query("fallback"))
		return c.JSON(fiber.Map{"name": name})
	})

	registerLocationRoutes(v1, deps)
	registerProfileRoutes(v1, deps)
	registerChatRoutes(v1, deps)
}

func registerLocationRoutes(v1 fiber.Router, deps Deps) {
	v1.Get("/locations/saved", func(c *fiber.Ctx) error {
		saved, err := deps.Store.Location()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no saved location")
			}
			return err
		}
		return c.JSON(saved)
	})

	v1.Post("/locations/saved", func(c *fiber.Ctx) error {
		var req saveLocationRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		data, err := deps.Weather.WeatherForDate(c.Context(), req.Lat, req.Lon, deps.Weather.Now())
		if err != nil {
			return upstreamError(err)
		}

		name := req.Name
		if name == "" {
			name = deps.Names.DisplayName(req.Lat, req.Lon, "")
		}

		saved := store.NewSavedLocation(name, data, deps.Weather.Now())
		deps.Store.SaveLocation(saved)
		return c.Status(fiber.StatusCreated).JSON(saved)
	})

	v1.Delete("/locations/saved", func(c *fiber.Ctx) error {
		deps.Store.RemoveLocation()
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func registerProfileRoutes(v1 fiber.Router, deps Deps) {
	v1.Get("/profile", func(c *fiber.Ctx) error {
		return c.JSON(deps.Store.Profile())
	})

	v1.Get("/profile/avatars", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"avatars": store.DefaultAvatars})
	})

	v1.Put("/profile", func(c *fiber.Ctx) error {
		var req updateProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if req.AvatarID != "" && !knownAvatar(req.AvatarID) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown avatar: "+req.AvatarID)
		}

		profile := deps.Store.Profile()
		if req.Name != "" {
			profile.Name = req.Name
		}
		if req.AvatarID != "" {
			profile.AvatarID = req.AvatarID
		}
		deps.Store.SaveProfile(profile)
		return c.JSON(profile)
	})
}

func registerChatRoutes(v1 fiber.Router, deps Deps) {
	v1.Get("/chat/list", func(c *fiber.Ctx) error {
		chats, err := deps.Chat.List(c.Context())
		if err != nil {
			// Serve the cached index through a backend outage.
			if idx, cacheErr := deps.Store.ChatIndex(); cacheErr == nil {
				return c.JSON(fiber.Map{"chats": idx.Chats, "cached": true})
			}
			return upstreamError(err)
		}

		deps.Store.SaveChatIndex(store.ChatIndex{Chats: chats, FetchedAt: time.Now()})
		return c.JSON(fiber.Map{"chats": chats})
	})

	v1.Post("/chat/save", func(c *fiber.Ctx) error {
		var req saveChatRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ref, err := deps.Chat.Save(c.Context(), req.SessionID, req.Title)
		if err != nil {
			return upstreamError(err)
		}

		deps.Store.RemoveChatIndex()
		return c.Status(fiber.StatusCreated).JSON(ref)
	})

	v1.Get("/chat/load/:id", func(c *fiber.Ctx) error {
		session, err := deps.Chat.Load(c.Context(), c.Params("id"))
		if err != nil {
			return upstreamError(err)
		}
		return c.JSON(session)
	})

	v1.Delete("/chat/delete/:id", func(c *fiber.Ctx) error {
		if err := deps.Chat.Delete(c.Context(), c.Params("id")); err != nil {
			return upstreamError(err)
		}

		deps.Store.RemoveChatIndex()
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Put("/chat/update/:id", func(c *fiber.Ctx) error {
		var req renameChatRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ref, err := deps.Chat.Rename(c.Context(), c.Params("id"), req.Title)
		if err != nil {
			return upstreamError(err)
		}

		deps.Store.RemoveChatIndex()
		return c.JSON(ref)
	})
}

// upstreamError maps failures of external collaborators to 502; malformed
// upstream payloads included, since the client can do nothing about either.
func upstreamError(err error) error {
	var normErr *weather.NormalizationError
	if errors.As(err, &normErr) {
		return fiber.NewError(fiber.StatusBadGateway, normErr.Error())
	}
	return fiber.NewError(fiber.StatusBadGateway, err.Error())
}

func knownAvatar(id string) bool {
	for _, a := range store.DefaultAvatars {
		if a.ID == id {
			return true
		}
	}
	return false
}

// coordQuery holds a validated coordinate pair.
type coordQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func parseCoordQuery(c *fiber.Ctx) (coordQuery, error) {
	var q coordQuery

	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" || lonStr == "" {
		return q, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return q, errors.New("invalid lat")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return q, errors.New("invalid lon")
	}

	q.Lat, q.Lon = lat, lon
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func parseDateQuery(c *fiber.Ctx, loc *time.Location) (time.Time, error) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return time.Time{}, errors.New("date query parameter is required")
	}
	date, err := time.ParseInLocation(weather.DateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}, errors.New("invalid date format; use YYYY-MM-DD")
	}
	return date, nil
}

func parseIntQuery(c *fiber.Ctx, key string, min, max int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, errors.New(key + " query parameter is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}

// monthQuery holds a validated year/month pair.
type monthQuery struct {
	Year  int `validate:"required,gte=2000,lte=2100"`
	Month int `validate:"required,gte=1,lte=12"`
}

func (m *monthQuery) bind(c *fiber.Ctx) error {
	year, err := parseIntQuery(c, "year", 2000, 2100)
	if err != nil {
		return err
	}
	month, err := parseIntQuery(c, "month", 1, 12)
	if err != nil {
		return err
	}
	m.Year, m.Month = year, month
	return validate.Struct(m)
}

// plannerQuery holds the planner request parameters.
type plannerQuery struct {
	coordQuery
	monthQuery
	Event string `validate:"required"`
}

func (p *plannerQuery) bind(c *fiber.Ctx) error {
	coords, err := parseCoordQuery(c)
	if err != nil {
		return err
	}
	p.coordQuery = coords

	if err := p.monthQuery.bind(c); err != nil {
		return err
	}

	p.Event = c.Query("event")
	if p.Event == "" {
		return errors.New("event query parameter is required")
	}
	return nil
}

type saveLocationRequest struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon  float64 `json:"lon" validate:"gte=-180,lte=180"`
}

type updateProfileRequest struct {
	Name     string `json:"name" validate:"omitempty,max=64"`
	AvatarID string `json:"avatarId"`
}

type saveChatRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Title     string `json:"title" validate:"omitempty,max=128"`
}

type renameChatRequest struct {
	Title string `json:"title" validate:"required,max=128"`
}

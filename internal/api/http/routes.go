package httpapi

import (
	"bytes"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/bikeshare-dashboard/internal/dashboard"
	"github.com/i474232898/bikeshare-dashboard/internal/render"
	"github.com/i474232898/bikeshare-dashboard/internal/rental"
	"github.com/i474232898/bikeshare-dashboard/internal/store"
)

var validate = validator.New()

// RendererFactory builds a renderer for the requested output format.
type RendererFactory func(format render.Format) render.Renderer

// Deps bundles what the routes need.
type Deps struct {
	Store      *store.RecordStore
	Controller *dashboard.Controller
	Renderer   RendererFactory
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/bounds", func(c *fiber.Ctx) error {
		lo, hi, err := deps.Store.Bounds()
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(fiber.Map{
			"min":     lo,
			"max":     hi,
			"records": deps.Store.Len(),
		})
	})

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		var q rangeQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		start, end := q.dates(deps.Store)
		dash, err := deps.Controller.Update(c.UserContext(), start, end)
		if err != nil {
			if errors.Is(err, rental.ErrMalformedRecord) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to recompute dashboard")
		}
		return c.JSON(dash)
	})

	v1.Get("/dashboard/current", func(c *fiber.Ctx) error {
		dash, err := deps.Controller.Current()
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(dash)
	})

	v1.Get("/charts/:name", func(c *fiber.Ctx) error {
		format, err := render.ParseFormat(c.Query("format"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		dash, err := deps.Controller.Current()
		if errors.Is(err, dashboard.ErrNoCurrent) {
			start, end := rangeQuery{}.dates(deps.Store)
			dash, err = deps.Controller.Update(c.UserContext(), start, end)
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to compute dashboard")
		}

		spec, ok := dash.Chart(c.Params("name"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown chart "+c.Params("name"))
		}

		var buf bytes.Buffer
		if err := deps.Renderer(format).Render(&buf, spec); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
		}
		c.Set(fiber.HeaderContentType, format.ContentType())
		return c.Send(buf.Bytes())
	})
}

// rangeQuery holds the date window of a dashboard request. Either end may be
// omitted, in which case the dataset bound is used.
type rangeQuery struct {
	Start string `validate:"omitempty,datetime=2006-01-02"`
	End   string `validate:"omitempty,datetime=2006-01-02"`
}

func (q *rangeQuery) bind(c *fiber.Ctx) error {
	q.Start = c.Query("start")
	q.End = c.Query("end")
	return validate.Struct(q)
}

// dates parses the window and clamps it to the dataset bounds. An inverted window
// is passed through unchanged; it yields an empty dashboard.
func (q rangeQuery) dates(s *store.RecordStore) (rental.Date, rental.Date) {
	var start, end rental.Date
	if q.Start != "" {
		start, _ = rental.ParseDate(q.Start)
	}
	if q.End != "" {
		end, _ = rental.ParseDate(q.End)
	}
	if clampedStart, clampedEnd, err := s.Clamp(start, end); err == nil {
		return clampedStart, clampedEnd
	}
	return start, end
}

package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/api-dashboard/internal/common"
	"github.com/i474232898/api-dashboard/internal/dashboard"
)

// Handler serves the dashboard page and its JSON actions.
type Handler struct {
	service *dashboard.Service
	timeout time.Duration
	actions map[string]surfaceAction
}

// pageData feeds the index template.
type pageData struct {
	Views     []dashboard.View
	HasAPIKey bool
	// Notice reports a form submission that could not be applied to any surface.
	Notice string
}

// apiKeyRequest is the body of PUT /api/v1/settings/api-key.
type apiKeyRequest struct {
	Key string `json:"key" form:"key"`
}

// surfaceAction is one user-triggered operation; arg reads a request parameter by name.
type surfaceAction struct {
	surface dashboard.SurfaceName
	run     func(ctx context.Context, arg func(string) string) (dashboard.View, error)
}

// newActions lists every operation reachable from the JSON API and the page forms.
// Keys are the path below /api/v1 and /actions.
func newActions(service *dashboard.Service) map[string]surfaceAction {
	return map[string]surfaceAction{
		"stocks/search": {dashboard.SurfaceStocks, func(ctx context.Context, arg func(string) string) (dashboard.View, error) {
			return service.SearchStock(ctx, arg("symbol"))
		}},
		"stocks/multi": {dashboard.SurfaceStocks, func(ctx context.Context, arg func(string) string) (dashboard.View, error) {
			return service.SearchSymbols(ctx, common.SplitList(arg("symbols")))
		}},
		"stocks/trending": {dashboard.SurfaceTrending, func(ctx context.Context, _ func(string) string) (dashboard.View, error) {
			return service.LoadTrending(ctx)
		}},
		"stocks/popular": {dashboard.SurfacePopular, func(ctx context.Context, _ func(string) string) (dashboard.View, error) {
			return service.LoadPopular(ctx)
		}},
		"stocks/latest": {dashboard.SurfaceLatest, func(ctx context.Context, arg func(string) string) (dashboard.View, error) {
			return service.LatestQuote(ctx, arg("symbol"))
		}},
		"stocks/filter": {dashboard.SurfaceStocks, func(_ context.Context, arg func(string) string) (dashboard.View, error) {
			return service.FilterStocks(arg("min"), arg("max"))
		}},
		"stocks/filter/reset": {dashboard.SurfaceStocks, func(context.Context, func(string) string) (dashboard.View, error) {
			return service.ResetFilter()
		}},
		"weather": {dashboard.SurfaceWeather, func(ctx context.Context, arg func(string) string) (dashboard.View, error) {
			return service.FetchWeather(ctx, arg("city"))
		}},
		"users": {dashboard.SurfaceUsers, func(ctx context.Context, arg func(string) string) (dashboard.View, error) {
			return service.FetchUsers(ctx, arg("count"))
		}},
		"countries": {dashboard.SurfaceCountry, func(ctx context.Context, arg func(string) string) (dashboard.View, error) {
			return service.FetchCountry(ctx, arg("name"))
		}},
		"quotes": {dashboard.SurfaceQuote, func(ctx context.Context, arg func(string) string) (dashboard.View, error) {
			return service.FetchQuote(ctx, arg("tag"))
		}},
		"jokes": {dashboard.SurfaceJoke, func(ctx context.Context, _ func(string) string) (dashboard.View, error) {
			return service.FetchJoke(ctx)
		}},
		"dogs": {dashboard.SurfaceDogs, func(ctx context.Context, arg func(string) string) (dashboard.View, error) {
			return service.FetchDogs(ctx, arg("count"))
		}},
	}
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
// timeout bounds each provider round trip started by a request (0 leaves it unbounded).
func RegisterRoutes(app *fiber.App, service *dashboard.Service, timeout time.Duration) {
	h := &Handler{service: service, timeout: timeout, actions: newActions(service)}

	app.Get("/", h.page)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "api-dashboard",
		})
	})
	app.Get("/surfaces/:name", h.fragment)
	app.Post("/settings/api-key", h.saveKeyForm)
	app.Post("/actions/*", h.formAction)

	v1 := app.Group("/api/v1")

	v1.Get("/surfaces", func(c *fiber.Ctx) error {
		return c.JSON(service.Views())
	})
	v1.Get("/surfaces/:name", func(c *fiber.Ctx) error {
		sf, ok := service.Surface(dashboard.SurfaceName(c.Params("name")))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown surface")
		}
		return c.JSON(sf.View())
	})

	v1.Get("/stocks/search", h.action("stocks/search"))
	v1.Get("/stocks/multi", h.action("stocks/multi"))
	v1.Get("/stocks/trending", h.action("stocks/trending"))
	v1.Get("/stocks/popular", h.action("stocks/popular"))
	v1.Get("/stocks/latest", h.action("stocks/latest"))
	v1.Get("/stocks/filter", h.action("stocks/filter"))
	v1.Post("/stocks/filter/reset", h.action("stocks/filter/reset"))

	v1.Get("/weather", h.action("weather"))
	v1.Get("/users", h.action("users"))
	v1.Get("/countries", h.action("countries"))
	v1.Get("/quotes", h.action("quotes"))
	v1.Get("/jokes", h.action("jokes"))
	v1.Get("/dogs", h.action("dogs"))

	v1.Put("/settings/api-key", func(c *fiber.Ctx) error {
		var req apiKeyRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		ctx, cancel := h.requestContext(c)
		defer cancel()

		view, err := h.saveKey(ctx, req.Key)
		return respond(c, view, err)
	})
}

// action adapts a surface operation into a handler that always answers with the surface view.
// Parameters come from the query string.
func (h *Handler) action(key string) fiber.Handler {
	act := h.actions[key]
	return func(c *fiber.Ctx) error {
		ctx, cancel := h.requestContext(c)
		defer cancel()

		view, err := act.run(ctx, func(name string) string { return c.Query(name) })
		return respond(c, view, err)
	}
}

func respond(c *fiber.Ctx, view dashboard.View, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	return c.Status(pipelineStatus.status(err)).JSON(view)
}

// formAction runs a page form and redirects back to the surface.
// A failure the surface did not record, such as an inverted price range, re-renders the page with a notice.
func (h *Handler) formAction(c *fiber.Ctx) error {
	act, ok := h.actions[c.Params("*")]
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown action")
	}
	sf, _ := h.service.Surface(act.surface)
	before := sf.View().Generation

	ctx, cancel := h.requestContext(c)
	defer cancel()

	_, err := act.run(ctx, func(name string) string { return c.FormValue(name) })
	if err != nil && sf.View().Generation == before {
		c.Status(pipelineStatus.status(err))
		return h.render(c, dashboard.Message(err))
	}
	return c.Redirect("/#"+string(act.surface), fiber.StatusSeeOther)
}

func (h *Handler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	ctx := c.UserContext()
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}

func (h *Handler) page(c *fiber.Ctx) error {
	return h.render(c, "")
}

func (h *Handler) render(c *fiber.Ctx, notice string) error {
	c.Type("html", "utf-8")
	return h.service.Renderer().Render(c, dashboard.TemplatePage, pageData{
		Views:     h.service.Views(),
		HasAPIKey: h.service.Session().APIKey() != "",
		Notice:    notice,
	})
}

func (h *Handler) fragment(c *fiber.Ctx) error {
	sf, ok := h.service.Surface(dashboard.SurfaceName(c.Params("name")))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown surface")
	}
	c.Type("html", "utf-8")
	return h.service.Renderer().Render(c, dashboard.TemplateSurface, sf.View())
}

// saveKey stores key and reloads the popular surface.
// A key that was not saved is reported as a plain error rather than a surface view.
func (h *Handler) saveKey(ctx context.Context, key string) (dashboard.View, error) {
	view, err := h.service.SaveAPIKey(ctx, key)
	if err != nil && view.Surface == "" {
		if errors.Is(err, dashboard.ErrInput) {
			return view, fiber.NewError(fiber.StatusBadRequest, dashboard.Message(err))
		}
		return view, fiber.NewError(fiber.StatusInternalServerError, "failed to save api key")
	}
	return view, err
}

// saveKeyForm handles the page's settings form and redirects back to the page.
func (h *Handler) saveKeyForm(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	// The popular surface reports its own failure; only a rejected key stops the redirect.
	var fe *fiber.Error
	if _, err := h.saveKey(ctx, c.FormValue("key")); errors.As(err, &fe) {
		return fe
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

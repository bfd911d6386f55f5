package checkout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const scriptPath = "/checkout/assets/checkout.js"

// TokenHeader carries the session token on callback requests.
const TokenHeader = "X-Checkout-Token"

func SetupRoutes(app *fiber.App, s *Server, gatherer prometheus.Gatherer) {
	app.Get("/ping", s.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	app.Get(scriptPath, s.Script)
	app.Get("/checkout/:session", s.Page)
	app.Post("/checkout/:session/success", s.Success)
	app.Post("/checkout/:session/dismiss", s.Dismiss)
	app.Post("/checkout/:session/failed", s.Failed)
}

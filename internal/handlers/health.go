// Package handlers contains the HTTP route handler functions for the Rowdy
// Cup API. Each handler corresponds to one endpoint and is responsible for
// reading the request, calling the scoring engine or the database, and
// writing a response.
package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health.
// Intentionally lightweight — no database queries, no authentication — so
// load balancers and container probes can poll it cheaply.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

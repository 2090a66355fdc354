// Tournament routes — listing, creating, and the cup-wide standings view.
//
// A tournament is one edition of the Rowdy Cup. Standings are recomputed
// from raw scores on every request; see compute.go.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rowdycup/scoreboard/internal/models"
)

// TournamentResponse is what we send back to clients. A dedicated response
// struct (instead of the raw GORM model) controls exactly which fields are
// serialized and lets us add computed fields like RoundCount.
type TournamentResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Year       int     `json:"year"`
	Status     string  `json:"status"`
	StartDate  *string `json:"startDate"` // ISO 8601 date string or null
	EndDate    *string `json:"endDate"`
	RoundCount int64   `json:"roundCount"`
	CreatedAt  string  `json:"createdAt"`
}

// CreateTournamentRequest is the JSON body for POST /api/v1/tournaments.
type CreateTournamentRequest struct {
	Name      string  `json:"name"`
	Year      int     `json:"year"`
	StartDate *string `json:"startDate"` // Optional: "YYYY-MM-DD"
	EndDate   *string `json:"endDate"`
}

// formatOptionalDate converts a *time.Time to a *string in "2006-01-02"
// format, preserving null.
func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("2006-01-02")
	return &s
}

// parseOptionalDate parses an optional "YYYY-MM-DD" string. Nil or empty
// input stays nil; a malformed non-empty string is an error.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// buildTournamentResponse loads the round count for a tournament response,
// surfacing any query failure instead of rendering a zero.
func buildTournamentResponse(db *gorm.DB, t *models.Tournament) (TournamentResponse, error) {
	var roundCount int64
	if err := db.Model(&models.Round{}).
		Where("tournament_id = ?", t.ID).Count(&roundCount).Error; err != nil {
		return TournamentResponse{}, err
	}
	return tournamentResponse(t, roundCount), nil
}

func tournamentResponse(t *models.Tournament, roundCount int64) TournamentResponse {
	return TournamentResponse{
		ID:         t.ID.String(),
		Name:       t.Name,
		Year:       t.Year,
		Status:     string(t.Status),
		StartDate:  formatOptionalDate(t.StartDate),
		EndDate:    formatOptionalDate(t.EndDate),
		RoundCount: roundCount,
		CreatedAt:  t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GetTournaments returns a handler for GET /api/v1/tournaments.
// Everyone sees every tournament; optional ?status=active filter.
func GetTournaments(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := db.Order("year DESC, created_at DESC")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var tournaments []models.Tournament
		if err := query.Find(&tournaments).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch tournaments",
			})
		}

		response := make([]TournamentResponse, 0, len(tournaments))
		for i := range tournaments {
			resp, err := buildTournamentResponse(db, &tournaments[i])
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to fetch tournaments",
				})
			}
			response = append(response, resp)
		}
		return c.JSON(response)
	}
}

// GetTournament returns a handler for GET /api/v1/tournaments/:id.
func GetTournament(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		var tournament models.Tournament
		if err := db.First(&tournament, "id = ?", id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "tournament not found",
			})
		}
		resp, err := buildTournamentResponse(db, &tournament)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch tournament",
			})
		}
		return c.JSON(resp)
	}
}

// CreateTournament returns a handler for POST /api/v1/tournaments.
// Admin only (enforced by RequireRole on the route).
func CreateTournament(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr, _ := c.Locals("userID").(string)
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid user ID",
			})
		}

		var req CreateTournamentRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "name is required",
			})
		}
		if req.Year == 0 {
			req.Year = time.Now().Year()
		}

		startDate, err := parseOptionalDate(req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "startDate must be in YYYY-MM-DD format",
			})
		}
		endDate, err := parseOptionalDate(req.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "endDate must be in YYYY-MM-DD format",
			})
		}

		tournament := models.Tournament{
			Name:      req.Name,
			Year:      req.Year,
			Status:    models.TournamentStatusUpcoming,
			StartDate: startDate,
			EndDate:   endDate,
			CreatedBy: userID,
		}
		if err := db.Create(&tournament).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create tournament",
			})
		}

		resp, err := buildTournamentResponse(db, &tournament)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch created tournament",
			})
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// GetTournamentStandings returns a handler for
// GET /api/v1/tournaments/:id/standings.
//
// Confirmed points come from locked matches only. Pass ?includePending=true
// to also roll the per-round pending leans up to the tournament level; the
// default matches the scoreboard's historical behavior of showing pending
// hints per round only.
func GetTournamentStandings(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		var tournament models.Tournament
		if err := db.First(&tournament, "id = ?", id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "tournament not found",
			})
		}

		includePending := c.Query("includePending") == "true"
		points, err := computeTournamentPoints(db, tournament.ID, includePending)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute standings",
			})
		}
		return c.JSON(points)
	}
}

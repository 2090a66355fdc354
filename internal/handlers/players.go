// Player roster routes. The roster is shared across tournaments; which
// matches a player appears in is set when matches are created.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rowdycup/scoreboard/internal/models"
	"github.com/rowdycup/scoreboard/internal/scoring"
)

// PlayerResponse is the JSON shape for a roster member.
type PlayerResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Team            string `json:"team"`
	DefaultHandicap *int   `json:"defaultHandicap"`
}

// PlayerRequest is the JSON body for creating or updating a player.
type PlayerRequest struct {
	Name            string `json:"name"`
	Team            string `json:"team"`
	DefaultHandicap *int   `json:"defaultHandicap"`
}

func playerResponse(p *models.Player) PlayerResponse {
	return PlayerResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		Team:            string(p.Team),
		DefaultHandicap: p.DefaultHandicap,
	}
}

func parseTeam(s string) (scoring.Team, bool) {
	team := scoring.Team(s)
	return team, team == scoring.TeamAviators || team == scoring.TeamProducers
}

// GetPlayers returns a handler for GET /api/v1/players.
// Optional ?team=aviators filter.
func GetPlayers(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := db.Order("name")
		if team := c.Query("team"); team != "" {
			query = query.Where("team = ?", team)
		}

		var players []models.Player
		if err := query.Find(&players).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch players",
			})
		}

		response := make([]PlayerResponse, 0, len(players))
		for i := range players {
			response = append(response, playerResponse(&players[i]))
		}
		return c.JSON(response)
	}
}

// CreatePlayer returns a handler for POST /api/v1/players. Admin only.
func CreatePlayer(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req PlayerRequest
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
		team, ok := parseTeam(req.Team)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "team must be 'aviators' or 'producers'",
			})
		}
		if req.DefaultHandicap != nil && *req.DefaultHandicap < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "defaultHandicap must not be negative",
			})
		}

		player := models.Player{
			Name:            req.Name,
			Team:            team,
			DefaultHandicap: req.DefaultHandicap,
		}
		if err := db.Create(&player).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create player",
			})
		}
		return c.Status(fiber.StatusCreated).JSON(playerResponse(&player))
	}
}

// UpdatePlayer returns a handler for PUT /api/v1/players/:id. Admin only.
func UpdatePlayer(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid player ID",
			})
		}

		var player models.Player
		if err := db.First(&player, "id = ?", id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "player not found",
			})
		}

		var req PlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.Name != "" {
			player.Name = req.Name
		}
		if req.Team != "" {
			team, ok := parseTeam(req.Team)
			if !ok {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "team must be 'aviators' or 'producers'",
				})
			}
			player.Team = team
		}
		if req.DefaultHandicap != nil {
			if *req.DefaultHandicap < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "defaultHandicap must not be negative",
				})
			}
			player.DefaultHandicap = req.DefaultHandicap
		}

		if err := db.Save(&player).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update player",
			})
		}
		return c.JSON(playerResponse(&player))
	}
}

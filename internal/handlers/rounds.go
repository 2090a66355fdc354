// Round routes — creating rounds under a tournament, per-round standings,
// and round-specific course handicap overrides.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rowdycup/scoreboard/internal/models"
)

// RoundResponse is the JSON shape for a round.
type RoundResponse struct {
	ID           string `json:"id"`
	TournamentID string `json:"tournamentId"`
	CourseID     string `json:"courseId"`
	CourseName   string `json:"courseName"`
	RoundNumber  int    `json:"roundNumber"`
	Name         string `json:"name"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	MatchCount   int64  `json:"matchCount"`
}

// CreateRoundRequest is the JSON body for POST /api/v1/tournaments/:id/rounds.
type CreateRoundRequest struct {
	CourseID    string `json:"courseId"`
	RoundNumber int    `json:"roundNumber"`
	Name        string `json:"name"`
	Date        string `json:"date"` // "YYYY-MM-DD"
}

// HandicapRequest is the JSON body for
// PUT /api/v1/rounds/:id/handicaps/:playerId.
type HandicapRequest struct {
	CourseHandicap int `json:"courseHandicap"`
}

// HandicapResponse is one player's handicap for a round, with the source of
// the number ("round" override or player "default").
type HandicapResponse struct {
	PlayerID       string `json:"playerId"`
	PlayerName     string `json:"playerName"`
	Team           string `json:"team"`
	CourseHandicap int    `json:"courseHandicap"`
	Source         string `json:"source"` // "round" or "default"
}

// buildRoundResponse loads the course name and match count a round response
// needs, surfacing any query failure instead of rendering zero values.
func buildRoundResponse(db *gorm.DB, r *models.Round) (RoundResponse, error) {
	var course models.Course
	if err := db.First(&course, "id = ?", r.CourseID).Error; err != nil {
		return RoundResponse{}, err
	}

	var matchCount int64
	if err := db.Model(&models.Match{}).
		Where("round_id = ?", r.ID).Count(&matchCount).Error; err != nil {
		return RoundResponse{}, err
	}

	return roundResponse(r, course.Name, matchCount), nil
}

func roundResponse(r *models.Round, courseName string, matchCount int64) RoundResponse {
	return RoundResponse{
		ID:           r.ID.String(),
		TournamentID: r.TournamentID.String(),
		CourseID:     r.CourseID.String(),
		CourseName:   courseName,
		RoundNumber:  r.RoundNumber,
		Name:         r.Name,
		Date:         r.Date.UTC().Format("2006-01-02"),
		Status:       string(r.Status),
		MatchCount:   matchCount,
	}
}

// GetRounds returns a handler for GET /api/v1/tournaments/:id/rounds.
func GetRounds(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		var rounds []models.Round
		if err := db.Where("tournament_id = ?", tournamentID).
			Order("round_number").Find(&rounds).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch rounds",
			})
		}

		response := make([]RoundResponse, 0, len(rounds))
		for i := range rounds {
			resp, err := buildRoundResponse(db, &rounds[i])
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to fetch rounds",
				})
			}
			response = append(response, resp)
		}
		return c.JSON(response)
	}
}

// CreateRound returns a handler for POST /api/v1/tournaments/:id/rounds.
// Admin only.
func CreateRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		var tournament models.Tournament
		if err := db.First(&tournament, "id = ?", tournamentID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "tournament not found",
			})
		}

		var req CreateRoundRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		courseID, err := uuid.Parse(req.CourseID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid course ID",
			})
		}
		var course models.Course
		if err := db.First(&course, "id = ?", courseID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "course not found",
			})
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "date must be in YYYY-MM-DD format",
			})
		}

		roundNumber := req.RoundNumber
		if roundNumber == 0 {
			// Next sequential number within the tournament.
			var maxNumber int
			db.Model(&models.Round{}).
				Where("tournament_id = ?", tournamentID).
				Select("COALESCE(MAX(round_number), 0)").Scan(&maxNumber)
			roundNumber = maxNumber + 1
		}

		round := models.Round{
			TournamentID: tournamentID,
			CourseID:     courseID,
			RoundNumber:  roundNumber,
			Name:         req.Name,
			Date:         date,
			Status:       models.RoundStatusScheduled,
		}
		if err := db.Create(&round).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create round",
			})
		}

		resp, err := buildRoundResponse(db, &round)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch created round",
			})
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// GetRoundStandings returns a handler for GET /api/v1/rounds/:id/standings.
// Recomputes every match in the round from raw scores and aggregates:
// confirmed points from locked matches, pending "+N" leans from in-progress
// matches with a current leader.
func GetRoundStandings(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid round ID",
			})
		}

		var round models.Round
		if err := db.First(&round, "id = ?", roundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "round not found",
			})
		}

		points, err := computeRoundPoints(db, round.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute standings",
			})
		}
		return c.JSON(points)
	}
}

// SetRoundHandicap returns a handler for
// PUT /api/v1/rounds/:id/handicaps/:playerId. Admin only.
// Upserts the round-specific course handicap override for a player.
func SetRoundHandicap(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid round ID",
			})
		}
		playerID, err := uuid.Parse(c.Params("playerId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid player ID",
			})
		}

		var req HandicapRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		// Negative handicaps are rejected here so the engine's non-negative
		// precondition always holds.
		if req.CourseHandicap < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "courseHandicap must not be negative",
			})
		}

		var round models.Round
		if err := db.First(&round, "id = ?", roundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "round not found",
			})
		}
		var player models.Player
		if err := db.First(&player, "id = ?", playerID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "player not found",
			})
		}

		var handicap models.PlayerRoundHandicap
		err = db.Where("round_id = ? AND player_id = ?", roundID, playerID).
			First(&handicap).Error
		switch {
		case err == nil:
			// Update in place — no history is kept.
			if err := db.Model(&handicap).
				Update("course_handicap", req.CourseHandicap).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to update handicap",
				})
			}
			handicap.CourseHandicap = req.CourseHandicap
		case err == gorm.ErrRecordNotFound:
			handicap = models.PlayerRoundHandicap{
				RoundID:        roundID,
				PlayerID:       playerID,
				CourseHandicap: req.CourseHandicap,
			}
			if err := db.Create(&handicap).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to save handicap",
				})
			}
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "database error",
			})
		}

		return c.JSON(HandicapResponse{
			PlayerID:       playerID.String(),
			PlayerName:     player.Name,
			Team:           string(player.Team),
			CourseHandicap: handicap.CourseHandicap,
			Source:         "round",
		})
	}
}

// GetRoundHandicaps returns a handler for GET /api/v1/rounds/:id/handicaps.
// Lists the effective course handicap for every player in the round's
// matches, marking whether it came from a round override or the player's
// default.
func GetRoundHandicaps(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid round ID",
			})
		}

		var round models.Round
		if err := db.First(&round, "id = ?", roundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "round not found",
			})
		}

		// Every player in any match of this round.
		var lineup []models.MatchPlayer
		if err := db.Preload("Player").
			Joins("JOIN matches ON matches.id = match_players.match_id").
			Where("matches.round_id = ?", roundID).
			Find(&lineup).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch players",
			})
		}

		var overrides []models.PlayerRoundHandicap
		if err := db.Where("round_id = ?", roundID).Find(&overrides).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch handicaps",
			})
		}
		overrideFor := make(map[uuid.UUID]int, len(overrides))
		for _, o := range overrides {
			overrideFor[o.PlayerID] = o.CourseHandicap
		}

		seen := make(map[uuid.UUID]bool, len(lineup))
		response := make([]HandicapResponse, 0, len(lineup))
		for _, mp := range lineup {
			if seen[mp.PlayerID] {
				continue
			}
			seen[mp.PlayerID] = true

			resp := HandicapResponse{
				PlayerID:   mp.PlayerID.String(),
				PlayerName: mp.Player.Name,
				Team:       string(mp.Team),
			}
			if hc, ok := overrideFor[mp.PlayerID]; ok {
				resp.CourseHandicap = hc
				resp.Source = "round"
			} else {
				if mp.Player.DefaultHandicap != nil {
					resp.CourseHandicap = *mp.Player.DefaultHandicap
				}
				resp.Source = "default"
			}
			response = append(response, resp)
		}
		return c.JSON(response)
	}
}

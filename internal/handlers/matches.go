// Match routes — creating matches under a round, the recomputed match state
// and scorecard views, and the admin completion lock.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rowdycup/scoreboard/internal/models"
	"github.com/rowdycup/scoreboard/internal/scoring"
	"github.com/rowdycup/scoreboard/internal/websocket"
)

// MatchPlayerResponse is one lineup entry in a match response.
type MatchPlayerResponse struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Team     string `json:"team"`
}

// MatchResponse is the JSON shape for a match, always carrying the freshly
// recomputed state.
type MatchResponse struct {
	ID      string                `json:"id"`
	RoundID string                `json:"roundId"`
	Name    string                `json:"name"`
	Format  string                `json:"format"`
	Players []MatchPlayerResponse `json:"players"`
	State   scoring.MatchState    `json:"state"`
}

// MatchDetailResponse adds the per-hole scorecard to the match response.
type MatchDetailResponse struct {
	MatchResponse
	Holes []scoring.HoleResult `json:"holes"`
}

// CreateMatchRequest is the JSON body for POST /api/v1/rounds/:id/matches.
// Lineups are given per side; singles expects one player each, best ball
// two, scramble and shamble any team size.
type CreateMatchRequest struct {
	Name      string   `json:"name"`
	Format    string   `json:"format"`
	Aviators  []string `json:"aviators"`  // player IDs
	Producers []string `json:"producers"` // player IDs
}

// loadLineup fetches a match's lineup with player names preloaded.
func loadLineup(db *gorm.DB, matchID uuid.UUID) ([]models.MatchPlayer, error) {
	var lineup []models.MatchPlayer
	if err := db.Preload("Player").
		Where("match_id = ?", matchID).Find(&lineup).Error; err != nil {
		return nil, err
	}
	return lineup, nil
}

func matchResponse(match *models.Match, lineup []models.MatchPlayer, state scoring.MatchState) MatchResponse {
	players := make([]MatchPlayerResponse, 0, len(lineup))
	for _, mp := range lineup {
		players = append(players, MatchPlayerResponse{
			PlayerID: mp.PlayerID.String(),
			Name:     mp.Player.Name,
			Team:     string(mp.Team),
		})
	}

	return MatchResponse{
		ID:      match.ID.String(),
		RoundID: match.RoundID.String(),
		Name:    match.Name,
		Format:  string(match.Format),
		Players: players,
		State:   state,
	}
}

// GetMatches returns a handler for GET /api/v1/rounds/:id/matches.
// Every match comes back with its recomputed state, so the round page can
// render leader chips without extra requests.
func GetMatches(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid round ID",
			})
		}

		var matches []models.Match
		if err := db.Where("round_id = ?", roundID).
			Order("created_at").Find(&matches).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch matches",
			})
		}

		response := make([]MatchResponse, 0, len(matches))
		for i := range matches {
			_, state, err := computeMatch(db, &matches[i])
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to compute match state",
				})
			}
			lineup, err := loadLineup(db, matches[i].ID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to fetch match lineup",
				})
			}
			response = append(response, matchResponse(&matches[i], lineup, state))
		}
		return c.JSON(response)
	}
}

// GetMatch returns a handler for GET /api/v1/matches/:id — the full
// scorecard: per-hole results (with counting-ball markers for best ball)
// plus the match state.
func GetMatch(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		match, fail := findMatch(db, c)
		if match == nil {
			return fail
		}

		holes, state, err := computeMatch(db, match)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute match state",
			})
		}

		lineup, err := loadLineup(db, match.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch match lineup",
			})
		}

		return c.JSON(MatchDetailResponse{
			MatchResponse: matchResponse(match, lineup, state),
			Holes:         holes,
		})
	}
}

// GetMatchState returns a handler for GET /api/v1/matches/:id/state — just
// the recomputed state, for clients polling a leader chip without the full
// scorecard payload.
func GetMatchState(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		match, fail := findMatch(db, c)
		if match == nil {
			return fail
		}

		_, state, err := computeMatch(db, match)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute match state",
			})
		}
		return c.JSON(state)
	}
}

// CreateMatch returns a handler for POST /api/v1/rounds/:id/matches.
// Admin only. Validates the lineup against the roster: every player must
// exist and play on the side they were assigned.
func CreateMatch(db *gorm.DB) fiber.Handler {
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

		var req CreateMatchRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		format := scoring.MatchFormat(req.Format)
		switch format {
		case scoring.FormatSingles, scoring.FormatBestBall,
			scoring.FormatScramble, scoring.FormatShamble:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "format must be 'singles', 'best_ball', 'scramble', or 'shamble'",
			})
		}

		if format == scoring.FormatSingles &&
			(len(req.Aviators) != 1 || len(req.Producers) != 1) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "singles matches take exactly one player per side",
			})
		}
		if len(req.Aviators) == 0 || len(req.Producers) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "both sides need at least one player",
			})
		}

		parseLineup := func(ids []string, team scoring.Team) ([]models.MatchPlayer, error) {
			lineup := make([]models.MatchPlayer, 0, len(ids))
			for _, raw := range ids {
				playerID, err := uuid.Parse(raw)
				if err != nil {
					return nil, err
				}
				var player models.Player
				if err := db.First(&player, "id = ?", playerID).Error; err != nil {
					return nil, err
				}
				lineup = append(lineup, models.MatchPlayer{
					PlayerID: playerID,
					Team:     team,
				})
			}
			return lineup, nil
		}

		aviators, err := parseLineup(req.Aviators, scoring.TeamAviators)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown player in aviators lineup",
			})
		}
		producers, err := parseLineup(req.Producers, scoring.TeamProducers)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown player in producers lineup",
			})
		}

		var created models.Match
		txErr := db.Transaction(func(tx *gorm.DB) error {
			match := models.Match{
				RoundID: roundID,
				Name:    req.Name,
				Format:  format,
			}
			if err := tx.Create(&match).Error; err != nil {
				return err
			}
			for i := range aviators {
				aviators[i].MatchID = match.ID
			}
			for i := range producers {
				producers[i].MatchID = match.ID
			}
			if err := tx.Create(&aviators).Error; err != nil {
				return err
			}
			if err := tx.Create(&producers).Error; err != nil {
				return err
			}
			created = match
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create match",
			})
		}

		_, state, err := computeMatch(db, &created)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute match state",
			})
		}
		lineup, err := loadLineup(db, created.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch match lineup",
			})
		}
		return c.Status(fiber.StatusCreated).JSON(matchResponse(&created, lineup, state))
	}
}

// LockMatch returns a handler for POST /api/v1/matches/:id/lock.
// Admin only. Locking is the only way a match completes — the engine never
// auto-closes, not even after 18 decided holes. The engine's CurrentHole is
// recorded at lock time so the "3&2" style result string stays stable.
func LockMatch(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		match, fail := findMatch(db, c)
		if match == nil {
			return fail
		}
		if match.Locked {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "match is already locked",
			})
		}

		_, state, err := computeMatch(db, match)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute match state",
			})
		}

		lockedHole := state.CurrentHole
		if err := db.Model(match).Updates(map[string]interface{}{
			"locked":      true,
			"locked_hole": lockedHole,
		}).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to lock match",
			})
		}
		match.Locked = true
		match.LockedHole = &lockedHole

		_, state, err = computeMatch(db, match)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute match state",
			})
		}

		lineup, err := loadLineup(db, match.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch match lineup",
			})
		}

		broadcastDerivedState(db, hub, match, state)
		return c.JSON(matchResponse(match, lineup, state))
	}
}

// UnlockMatch returns a handler for POST /api/v1/matches/:id/unlock.
// Admin only; undoes an accidental lock so scores can be corrected.
func UnlockMatch(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		match, fail := findMatch(db, c)
		if match == nil {
			return fail
		}
		if !match.Locked {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "match is not locked",
			})
		}

		if err := db.Model(match).Updates(map[string]interface{}{
			"locked":      false,
			"locked_hole": nil,
		}).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to unlock match",
			})
		}
		match.Locked = false
		match.LockedHole = nil

		_, state, err := computeMatch(db, match)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute match state",
			})
		}

		lineup, err := loadLineup(db, match.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch match lineup",
			})
		}

		broadcastDerivedState(db, hub, match, state)
		return c.JSON(matchResponse(match, lineup, state))
	}
}

// findMatch parses :id and loads the match, writing the error response
// itself. A nil match means the response has already been sent.
func findMatch(db *gorm.DB, c *fiber.Ctx) (*models.Match, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid match ID",
		})
	}

	var match models.Match
	if err := db.First(&match, "id = ?", id).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "match not found",
		})
	}
	return &match, nil
}

// broadcastDerivedState pushes the recomputed match, round, and tournament
// state to everyone watching this match. Called after every mutation that
// can change derived output.
func broadcastDerivedState(db *gorm.DB, hub *websocket.Hub, match *models.Match, state scoring.MatchState) {
	matchID := match.ID.String()
	if lineup, err := loadLineup(db, match.ID); err == nil {
		hub.BroadcastEvent(matchID, websocket.EventMatchUpdated, matchResponse(match, lineup, state))
	}

	if points, err := computeRoundPoints(db, match.RoundID); err == nil {
		hub.BroadcastEvent(matchID, websocket.EventRoundUpdated, points)
	}

	var round models.Round
	if err := db.First(&round, "id = ?", match.RoundID).Error; err == nil {
		if points, err := computeTournamentPoints(db, round.TournamentID, false); err == nil {
			hub.BroadcastEvent(matchID, websocket.EventTournamentUpdated, points)
		}
	}
}

// Score entry — the one write path that changes derived state.
//
// Scores are upserted in place; there is no history. After every write the
// engine recomputes net score, match state, and round/tournament points from
// raw data and the results are broadcast to everyone watching the match.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rowdycup/scoreboard/internal/models"
	"github.com/rowdycup/scoreboard/internal/scoring"
	"github.com/rowdycup/scoreboard/internal/websocket"
)

// maxGrossScore caps entered scores. Nobody has ever legitimately carded
// more than this on one hole; anything bigger is a typo.
const maxGrossScore = 20

// ScoreRequest is the JSON body for PUT /api/v1/matches/:id/scores.
//
// Singles and best-ball matches score per player: set PlayerID. Scramble
// and shamble matches score per team: set Team. GrossScore null clears the
// cell back to "not entered".
type ScoreRequest struct {
	PlayerID   *string `json:"playerId"`
	Team       *string `json:"team"`
	Hole       int     `json:"hole"`
	GrossScore *int    `json:"grossScore"`
}

// ScoreResponse echoes the written cell with the derived per-hole numbers.
type ScoreResponse struct {
	MatchID         string  `json:"matchId"`
	PlayerID        *string `json:"playerId,omitempty"`
	Team            *string `json:"team,omitempty"`
	Hole            int     `json:"hole"`
	GrossScore      *int    `json:"grossScore"`
	HandicapStrokes int     `json:"handicapStrokes"`
	NetScore        *int    `json:"netScore"`
}

// SubmitScore returns a handler for PUT /api/v1/matches/:id/scores.
// Open to all authenticated users — participants enter their own group's
// scores and admins fix mistakes; both go through the same path.
func SubmitScore(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		match, fail := findMatch(db, c)
		if match == nil {
			return fail
		}
		if match.Locked {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "match is locked",
			})
		}

		var req ScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.Hole < 1 || req.Hole > scoring.MatchHoles {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "hole must be between 1 and 18",
			})
		}
		if req.GrossScore != nil && (*req.GrossScore < 1 || *req.GrossScore > maxGrossScore) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "grossScore must be between 1 and 20",
			})
		}

		var resp *ScoreResponse
		var err error
		if match.Format.TeamScored() {
			resp, err = writeTeamScore(db, c, match, &req)
		} else {
			resp, err = writePlayerScore(db, c, match, &req)
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save score",
			})
		}
		if resp == nil {
			// Validation failure; response already written.
			return nil
		}

		_, state, cerr := computeMatch(db, match)
		if cerr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute match state",
			})
		}

		hub.BroadcastEvent(match.ID.String(), websocket.EventScoreUpdated, resp)
		broadcastDerivedState(db, hub, match, state)

		return c.JSON(resp)
	}
}

// writePlayerScore handles the per-player model used by singles and best
// ball. The net score is computed through the engine and cached on the row.
func writePlayerScore(db *gorm.DB, c *fiber.Ctx, match *models.Match, req *ScoreRequest) (*ScoreResponse, error) {
	if req.PlayerID == nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "playerId is required for this match format",
		})
	}
	playerID, err := uuid.Parse(*req.PlayerID)
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid player ID",
		})
	}

	// The player must actually be in this match.
	var mp models.MatchPlayer
	if err := db.Where("match_id = ? AND player_id = ?", match.ID, playerID).
		First(&mp).Error; err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "player is not in this match",
		})
	}

	if req.GrossScore == nil {
		// Clearing the cell: delete the row so the hole reads "not entered".
		if err := db.Where("match_id = ? AND player_id = ? AND hole_number = ?",
			match.ID, playerID, req.Hole).Delete(&models.Score{}).Error; err != nil {
			return nil, err
		}
		return &ScoreResponse{
			MatchID:  match.ID.String(),
			PlayerID: req.PlayerID,
			Hole:     req.Hole,
		}, nil
	}

	strokes, err := strokesFor(db, match, playerID, req.Hole)
	if err != nil {
		return nil, err
	}
	net := scoring.NetScore(req.GrossScore, strokes)

	userIDStr, _ := c.Locals("userID").(string)
	enteredBy, _ := uuid.Parse(userIDStr)

	score := models.Score{
		MatchID:         match.ID,
		PlayerID:        playerID,
		HoleNumber:      req.Hole,
		GrossScore:      *req.GrossScore,
		HandicapStrokes: strokes,
		NetScore:        *net,
		EnteredBy:       enteredBy,
	}
	// Upsert on the (match, player, hole) cell — updates overwrite in place.
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "match_id"}, {Name: "player_id"}, {Name: "hole_number"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"gross_score", "handicap_strokes", "net_score", "entered_by", "updated_at",
		}),
	}).Create(&score).Error; err != nil {
		return nil, err
	}

	return &ScoreResponse{
		MatchID:         match.ID.String(),
		PlayerID:        req.PlayerID,
		Hole:            req.Hole,
		GrossScore:      req.GrossScore,
		HandicapStrokes: strokes,
		NetScore:        net,
	}, nil
}

// writeTeamScore handles the shared-score model used by scramble and
// shamble. No handicap applies; the gross is the counting score.
func writeTeamScore(db *gorm.DB, c *fiber.Ctx, match *models.Match, req *ScoreRequest) (*ScoreResponse, error) {
	if req.Team == nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "team is required for this match format",
		})
	}
	team := scoring.Team(*req.Team)
	if team != scoring.TeamAviators && team != scoring.TeamProducers {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "team must be 'aviators' or 'producers'",
		})
	}

	if req.GrossScore == nil {
		if err := db.Where("match_id = ? AND team = ? AND hole_number = ?",
			match.ID, team, req.Hole).Delete(&models.TeamScore{}).Error; err != nil {
			return nil, err
		}
		return &ScoreResponse{
			MatchID: match.ID.String(),
			Team:    req.Team,
			Hole:    req.Hole,
		}, nil
	}

	userIDStr, _ := c.Locals("userID").(string)
	enteredBy, _ := uuid.Parse(userIDStr)

	score := models.TeamScore{
		MatchID:    match.ID,
		Team:       team,
		HoleNumber: req.Hole,
		GrossScore: *req.GrossScore,
		EnteredBy:  enteredBy,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "match_id"}, {Name: "team"}, {Name: "hole_number"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"gross_score", "entered_by", "updated_at",
		}),
	}).Create(&score).Error; err != nil {
		return nil, err
	}

	return &ScoreResponse{
		MatchID:    match.ID.String(),
		Team:       req.Team,
		Hole:       req.Hole,
		GrossScore: req.GrossScore,
		NetScore:   req.GrossScore, // no handicap in team-scored formats
	}, nil
}

// strokesFor resolves a player's handicap strokes on one hole of a match:
// round override → player default → scratch, then the hole's rank through
// the allocator.
func strokesFor(db *gorm.DB, match *models.Match, playerID uuid.UUID, hole int) (int, error) {
	var round models.Round
	if err := db.First(&round, "id = ?", match.RoundID).Error; err != nil {
		return 0, err
	}

	var holeRow models.Hole
	rank := 0
	err := db.Where("course_id = ? AND number = ?", round.CourseID, hole).
		First(&holeRow).Error
	switch {
	case err == nil:
		if holeRow.HandicapRank != nil {
			rank = *holeRow.HandicapRank
		}
	case err == gorm.ErrRecordNotFound:
		// Hole not configured: treated as unranked.
	default:
		return 0, err
	}

	var override *int
	var prh models.PlayerRoundHandicap
	err = db.Where("round_id = ? AND player_id = ?", match.RoundID, playerID).
		First(&prh).Error
	switch {
	case err == nil:
		override = &prh.CourseHandicap
	case err == gorm.ErrRecordNotFound:
	default:
		return 0, err
	}

	var player models.Player
	if err := db.First(&player, "id = ?", playerID).Error; err != nil {
		return 0, err
	}

	handicap := scoring.ResolveCourseHandicap(override, player.DefaultHandicap)
	return scoring.StrokesForHole(handicap, rank), nil
}

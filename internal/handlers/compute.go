// compute.go — assembly of scoring-engine inputs from raw database rows.
//
// Everything derived (net scores, match state, round and tournament points)
// is recomputed here from raw scores and configuration on every read. There
// is no cached derived-state table to invalidate; correctness comes from
// recomputation.
package handlers

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rowdycup/scoreboard/internal/models"
	"github.com/rowdycup/scoreboard/internal/scoring"
)

// loadMatchInput gathers everything the scoring engine needs for one match:
// the course's hole configuration, each side's lineup with resolved course
// handicaps, and the raw score sheets keyed by (hole, player) / (hole, team).
func loadMatchInput(db *gorm.DB, match *models.Match) (scoring.MatchInput, error) {
	in := scoring.MatchInput{Format: match.Format}

	var round models.Round
	if err := db.First(&round, "id = ?", match.RoundID).Error; err != nil {
		return in, err
	}

	var holes []models.Hole
	if err := db.Where("course_id = ?", round.CourseID).Order("number").Find(&holes).Error; err != nil {
		return in, err
	}
	in.Holes = make([]scoring.HoleSetup, 0, len(holes))
	for _, h := range holes {
		rank := 0 // unranked holes never receive strokes
		if h.HandicapRank != nil {
			rank = *h.HandicapRank
		}
		in.Holes = append(in.Holes, scoring.HoleSetup{
			Number:       h.Number,
			Par:          h.Par,
			HandicapRank: rank,
		})
	}

	var lineup []models.MatchPlayer
	if err := db.Preload("Player").Where("match_id = ?", match.ID).Find(&lineup).Error; err != nil {
		return in, err
	}

	// Round-specific handicap overrides, keyed by player.
	var overrides []models.PlayerRoundHandicap
	if err := db.Where("round_id = ?", match.RoundID).Find(&overrides).Error; err != nil {
		return in, err
	}
	overrideFor := make(map[uuid.UUID]*int, len(overrides))
	for i := range overrides {
		overrideFor[overrides[i].PlayerID] = &overrides[i].CourseHandicap
	}

	for _, mp := range lineup {
		p := scoring.PlayerInput{
			ID: mp.PlayerID,
			CourseHandicap: scoring.ResolveCourseHandicap(
				overrideFor[mp.PlayerID],
				mp.Player.DefaultHandicap,
			),
		}
		if mp.Team == scoring.TeamAviators {
			in.Aviators = append(in.Aviators, p)
		} else {
			in.Producers = append(in.Producers, p)
		}
	}

	if match.Format.TeamScored() {
		var teamScores []models.TeamScore
		if err := db.Where("match_id = ?", match.ID).Find(&teamScores).Error; err != nil {
			return in, err
		}
		in.TeamScores = make(scoring.TeamScoreSheet, len(teamScores))
		for _, s := range teamScores {
			in.TeamScores[scoring.TeamScoreKey{Hole: s.HoleNumber, Team: s.Team}] = s.GrossScore
		}
	} else {
		var scores []models.Score
		if err := db.Where("match_id = ?", match.ID).Find(&scores).Error; err != nil {
			return in, err
		}
		in.Scores = make(scoring.ScoreSheet, len(scores))
		for _, s := range scores {
			in.Scores[scoring.ScoreKey{Hole: s.HoleNumber, PlayerID: s.PlayerID}] = s.GrossScore
		}
	}

	if match.Locked {
		locked := scoring.MatchHoles + 1
		if match.LockedHole != nil {
			locked = *match.LockedHole
		}
		in.LockedAtHole = &locked
	}

	return in, nil
}

// computeMatch recomputes hole results and match state for one match.
func computeMatch(db *gorm.DB, match *models.Match) ([]scoring.HoleResult, scoring.MatchState, error) {
	in, err := loadMatchInput(db, match)
	if err != nil {
		return nil, scoring.MatchState{}, err
	}
	holes, state := scoring.ComputeMatch(in)
	return holes, state, nil
}

// computeRoundPoints recomputes the point totals for every match in a round.
func computeRoundPoints(db *gorm.DB, roundID uuid.UUID) (scoring.RoundPoints, error) {
	var matches []models.Match
	if err := db.Where("round_id = ?", roundID).Find(&matches).Error; err != nil {
		return scoring.RoundPoints{}, err
	}

	states := make([]scoring.MatchState, 0, len(matches))
	for i := range matches {
		_, state, err := computeMatch(db, &matches[i])
		if err != nil {
			return scoring.RoundPoints{}, err
		}
		states = append(states, state)
	}
	return scoring.AggregateRound(states), nil
}

// computeTournamentPoints recomputes the cup totals across all rounds of a
// tournament. Pending round leans roll up only when includePending is set.
func computeTournamentPoints(db *gorm.DB, tournamentID uuid.UUID, includePending bool) (scoring.TournamentPoints, error) {
	var rounds []models.Round
	if err := db.Where("tournament_id = ?", tournamentID).Find(&rounds).Error; err != nil {
		return scoring.TournamentPoints{}, err
	}

	points := make([]scoring.RoundPoints, 0, len(rounds))
	for _, r := range rounds {
		rp, err := computeRoundPoints(db, r.ID)
		if err != nil {
			return scoring.TournamentPoints{}, err
		}
		points = append(points, rp)
	}
	return scoring.AggregateTournament(points, includePending), nil
}

// Package scoring implements the Rowdy Cup match-scoring engine: handicap
// stroke allocation, net-score calculation, best-ball selection, match-play
// status, and round/tournament point aggregation.
//
// Everything in this package is a pure function of its inputs. Nothing here
// touches the database, the clock, or the network — the handlers fetch raw
// scores and hole/handicap configuration, hand them to this package, and
// persist or broadcast whatever comes back. Derived values (net scores, match
// state, point totals) are recomputed from raw data on every read; there is
// no cached aggregate to drift out of sync.
//
// The data flows one direction:
//
//	raw scores + handicap config
//	  → StrokesForHole → NetScore → BestBall (team formats)
//	  → ComputeMatchState → AggregateRound → AggregateTournament
package scoring

import "github.com/google/uuid"

// Team identifies one of the two fixed Rowdy Cup sides. Every tournament is
// Aviators vs. Producers; there is no third team and no per-tournament
// team registry.
type Team string

const (
	TeamAviators  Team = "aviators"
	TeamProducers Team = "producers"
)

// MatchFormat describes how a match is scored.
type MatchFormat string

const (
	// FormatSingles is 1v1 match play on net scores.
	FormatSingles MatchFormat = "singles"
	// FormatBestBall is 2v2: each player holes out, the lowest net score
	// on each side counts for the team.
	FormatBestBall MatchFormat = "best_ball"
	// FormatScramble is a team format with one shared ball; a single gross
	// score is entered per team per hole and compared without handicap.
	FormatScramble MatchFormat = "scramble"
	// FormatShamble drives as a scramble then plays individual balls, but
	// is scored here the same way as a scramble: one shared team gross.
	FormatShamble MatchFormat = "shamble"
)

// TeamScored reports whether the format records one shared gross score per
// team rather than per-player scores.
func (f MatchFormat) TeamScored() bool {
	return f == FormatScramble || f == FormatShamble
}

// MatchStatus tracks the lifecycle of a match. A match never completes on
// its own — not even after 18 holes — it stays in progress until an admin
// locks it. Early mathematical closeout is deliberately not detected.
type MatchStatus string

const (
	MatchStatusUpcoming   MatchStatus = "upcoming"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

// ScoreKey is the composite lookup key for one player's score on one hole.
// Keying by (hole number, player UUID) instead of a concatenated
// "hole-playerName" string means two players who share a display name can
// never collide.
type ScoreKey struct {
	Hole     int
	PlayerID uuid.UUID
}

// ScoreSheet maps each (hole, player) cell to the entered gross score.
// A missing key means the score has not been entered yet.
type ScoreSheet map[ScoreKey]int

// Gross returns the entered gross score for a player on a hole, or nil if
// no score has been entered.
func (s ScoreSheet) Gross(hole int, playerID uuid.UUID) *int {
	if v, ok := s[ScoreKey{Hole: hole, PlayerID: playerID}]; ok {
		return &v
	}
	return nil
}

// TeamScoreSheet maps (hole, team) to the shared gross score entered for
// scramble and shamble formats.
type TeamScoreSheet map[TeamScoreKey]int

// TeamScoreKey addresses one team's shared score on one hole.
type TeamScoreKey struct {
	Hole int
	Team Team
}

// Gross returns the team's shared gross score on a hole, or nil if not entered.
func (s TeamScoreSheet) Gross(hole int, team Team) *int {
	if v, ok := s[TeamScoreKey{Hole: hole, Team: team}]; ok {
		return &v
	}
	return nil
}

// IntPtr returns a pointer to v. Convenience for building nullable score
// values in callers and tests.
func IntPtr(v int) *int {
	return &v
}

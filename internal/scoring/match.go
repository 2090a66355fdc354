package scoring

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// MatchHoles is the number of holes in a match. Rowdy Cup matches are always
// stroke-counted through a full 18; there is no 9-hole variant.
const MatchHoles = 18

// HoleSetup is the course configuration for one hole as the engine needs it.
// HandicapRank is 0 when the hole hasn't been ranked yet, which means no
// strokes are ever allocated there.
type HoleSetup struct {
	Number       int
	Par          int
	HandicapRank int
}

// PlayerInput is one match participant with their resolved course handicap.
type PlayerInput struct {
	ID             uuid.UUID
	CourseHandicap int
}

// MatchInput bundles everything needed to score one match from raw data.
type MatchInput struct {
	Format    MatchFormat
	Holes     []HoleSetup
	Aviators  []PlayerInput
	Producers []PlayerInput

	// Scores holds per-player gross scores for singles and best ball.
	Scores ScoreSheet
	// TeamScores holds the shared team gross for scramble and shamble.
	TeamScores TeamScoreSheet

	// LockedAtHole is set when an admin has locked the match complete: the
	// value of CurrentHole recorded at lock time. Nil while the match is
	// open. 19 means the match was locked after all 18 holes were scored.
	LockedAtHole *int
}

// HoleResult is one hole's contribution to a match: the counting score for
// each team (nil until available) plus, for per-player formats, the
// individual scoring lines and which ball counted.
type HoleResult struct {
	Hole          int  `json:"hole"`
	AviatorScore  *int `json:"aviatorScore"`
	ProducerScore *int `json:"producerScore"`

	Aviators  []BallEntry `json:"aviators,omitempty"`
	Producers []BallEntry `json:"producers,omitempty"`

	// CountingAviator / CountingProducer identify whose ball the team score
	// came from in best-ball formats. The UI highlights exactly one ball per
	// side, even when teammates tie.
	CountingAviator  *uuid.UUID `json:"countingAviator,omitempty"`
	CountingProducer *uuid.UUID `json:"countingProducer,omitempty"`
}

// Decided reports whether both teams have a counting score on this hole.
// A partially entered hole (one side scored, the other not) stays undecided;
// that's normal mid-round state, not an error.
func (h HoleResult) Decided() bool {
	return h.AviatorScore != nil && h.ProducerScore != nil
}

// Winner returns which team won the hole, or nil on a tie or an undecided
// hole. Strictly lower counting score wins; equal scores halve the hole.
func (h HoleResult) Winner() *Team {
	if !h.Decided() {
		return nil
	}
	switch {
	case *h.AviatorScore < *h.ProducerScore:
		t := TeamAviators
		return &t
	case *h.ProducerScore < *h.AviatorScore:
		t := TeamProducers
		return &t
	default:
		return nil
	}
}

// MatchState is the derived, recomputed-on-read status of one match.
// Field names match the JSON contract the mobile app and the persisted
// schema already use.
type MatchState struct {
	LeadingTeam *Team       `json:"leadingTeam"`
	LeadAmount  int         `json:"leadAmount"`
	CurrentHole int         `json:"currentHole"`
	Status      MatchStatus `json:"status"`
	Result      string      `json:"result,omitempty"`
}

// BuildHoleResults runs the per-hole pipeline for a match: allocate strokes,
// derive net scores, and (for best-ball formats) pick the counting ball per
// team. Holes are returned in hole-number order regardless of input order.
func BuildHoleResults(in MatchInput) []HoleResult {
	holes := make([]HoleSetup, len(in.Holes))
	copy(holes, in.Holes)
	sort.Slice(holes, func(i, j int) bool { return holes[i].Number < holes[j].Number })

	results := make([]HoleResult, 0, len(holes))
	for _, hole := range holes {
		results = append(results, buildHole(in, hole))
	}
	return results
}

func buildHole(in MatchInput, hole HoleSetup) HoleResult {
	r := HoleResult{Hole: hole.Number}

	if in.Format.TeamScored() {
		// Scramble and shamble: one shared gross per team, no handicap, no
		// per-player selection.
		r.AviatorScore = in.TeamScores.Gross(hole.Number, TeamAviators)
		r.ProducerScore = in.TeamScores.Gross(hole.Number, TeamProducers)
		return r
	}

	r.Aviators = ballEntries(in.Aviators, hole, in.Scores)
	r.Producers = ballEntries(in.Producers, hole, in.Scores)

	if best := BestBall(r.Aviators); best != nil {
		r.AviatorScore = best.Net
		id := best.PlayerID
		r.CountingAviator = &id
	}
	if best := BestBall(r.Producers); best != nil {
		r.ProducerScore = best.Net
		id := best.PlayerID
		r.CountingProducer = &id
	}
	return r
}

func ballEntries(players []PlayerInput, hole HoleSetup, scores ScoreSheet) []BallEntry {
	entries := make([]BallEntry, 0, len(players))
	for _, p := range players {
		strokes := StrokesForHole(p.CourseHandicap, hole.HandicapRank)
		gross := scores.Gross(hole.Number, p.ID)
		entries = append(entries, NewBallEntry(p.ID, gross, strokes))
	}
	return entries
}

// ComputeMatchState folds hole results into the running match-play status.
//
// Only decided holes move the tally: a hole won puts its team 1 up, a halved
// hole consumes the hole without moving the count, and a hole where either
// side is still missing a score is skipped. CurrentHole is the lowest hole
// number still undecided, or 19 once all 18 are in.
//
// lockedAtHole carries the admin completion lock (see MatchInput); when set
// the match reports completed and a conventional result string ("3&2",
// "1 UP", "AS") is derived from the lead and how many holes were left at
// lock time.
func ComputeMatchState(holes []HoleResult, lockedAtHole *int) MatchState {
	byNumber := make(map[int]HoleResult, len(holes))
	for _, h := range holes {
		byNumber[h.Hole] = h
	}

	upCount := 0
	anyScore := false
	currentHole := MatchHoles + 1
	for n := 1; n <= MatchHoles; n++ {
		h, ok := byNumber[n]
		if ok && (h.AviatorScore != nil || h.ProducerScore != nil) {
			anyScore = true
		}
		if !ok || !h.Decided() {
			if n < currentHole {
				currentHole = n
			}
			continue
		}
		switch w := h.Winner(); {
		case w == nil:
			// halved
		case *w == TeamAviators:
			upCount++
		default:
			upCount--
		}
	}

	state := MatchState{
		LeadAmount:  upCount,
		CurrentHole: currentHole,
	}
	switch {
	case upCount > 0:
		t := TeamAviators
		state.LeadingTeam = &t
	case upCount < 0:
		t := TeamProducers
		state.LeadingTeam = &t
		state.LeadAmount = -upCount
	}

	switch {
	case lockedAtHole != nil:
		state.Status = MatchStatusCompleted
		state.Result = resultString(state.LeadAmount, *lockedAtHole)
	case anyScore:
		state.Status = MatchStatusInProgress
	default:
		state.Status = MatchStatusUpcoming
	}
	return state
}

// ComputeMatch is the full pipeline: build the hole results and fold them
// into a match state in one call.
func ComputeMatch(in MatchInput) ([]HoleResult, MatchState) {
	holes := BuildHoleResults(in)
	return holes, ComputeMatchState(holes, in.LockedAtHole)
}

// resultString renders the conventional match-play result once a match is
// locked: "AS" for a halved match, "N UP" when it went the full 18, and
// "N&M" when M holes were left at lock time.
func resultString(leadAmount, lockedAtHole int) string {
	if leadAmount == 0 {
		return "AS"
	}
	remaining := MatchHoles - lockedAtHole
	if remaining <= 0 {
		return fmt.Sprintf("%d UP", leadAmount)
	}
	return fmt.Sprintf("%d&%d", leadAmount, remaining)
}

package scoring

import "github.com/google/uuid"

// BallEntry is one player's scoring line on one hole: the entered gross
// score (nil until entered), the strokes they receive there, and the
// resulting net score.
type BallEntry struct {
	PlayerID uuid.UUID `json:"playerId"`
	Gross    *int      `json:"grossScore"`
	Strokes  int       `json:"handicapStrokes"`
	Net      *int      `json:"netScore"`
}

// NewBallEntry builds a BallEntry, deriving the net score from the gross
// and the stroke count.
func NewBallEntry(playerID uuid.UUID, gross *int, strokes int) BallEntry {
	return BallEntry{
		PlayerID: playerID,
		Gross:    gross,
		Strokes:  strokes,
		Net:      NetScore(gross, strokes),
	}
}

// BestBall picks the entry that counts for a team on one hole: the lowest
// net score among teammates who have actually entered a gross score.
//
// Players without a gross score are skipped entirely — a handicap stroke
// can't make a score out of nothing. On a net-score tie the first entry in
// input order wins; the selection only ever marks one ball as counting, and
// a stable pick keeps the scorecard from flickering between tied teammates
// on recompute.
//
// Returns nil when no teammate has a score yet. Callers must treat that as
// "no team score on this hole", never as zero.
func BestBall(entries []BallEntry) *BallEntry {
	var best *BallEntry
	for i := range entries {
		e := &entries[i]
		if e.Gross == nil || e.Net == nil {
			continue
		}
		if best == nil || *e.Net < *best.Net {
			best = e
		}
	}
	return best
}

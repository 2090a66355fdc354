package scoring

// StrokesForHole returns how many handicap strokes (0, 1, or 2) a player
// receives on a hole, given their course handicap and the hole's handicap
// rank (1 = hardest hole, 18 = easiest).
//
// A rank of 0 means the hole hasn't been ranked yet; no strokes can be
// allocated without a rank. Otherwise a player receives a stroke on every
// hole whose rank is within their course handicap — a 9 handicap strokes
// on the 9 hardest holes.
//
// Handicaps above 18 get a second stroke on the rank-1 hole only. Full USGA
// allocation would wrap a second stroke onto every hole once the handicap
// exceeds 18; this engine has always given it to the hardest hole alone, and
// existing scorecards depend on that, so the behavior is kept as-is.
func StrokesForHole(courseHandicap, handicapRank int) int {
	if handicapRank <= 0 {
		return 0
	}
	if handicapRank == 1 && courseHandicap >= 19 {
		return 2
	}
	if courseHandicap >= handicapRank {
		return 1
	}
	return 0
}

// NetScore applies handicap strokes to a gross score. A nil gross score
// means "not yet entered" and propagates as nil — a missing score is never
// invented. Net scores floor at zero.
func NetScore(gross *int, strokes int) *int {
	if gross == nil {
		return nil
	}
	net := *gross - strokes
	if net < 0 {
		net = 0
	}
	return &net
}

// ResolveCourseHandicap picks the handicap to use for a player in a round:
// the round-specific override if an admin entered one, otherwise the
// player's default, otherwise 0 (scratch).
func ResolveCourseHandicap(roundOverride, playerDefault *int) int {
	if roundOverride != nil {
		return *roundOverride
	}
	if playerDefault != nil {
		return *playerDefault
	}
	return 0
}

package scoring

// RoundPoints is the point summary for one round. Confirmed points come only
// from matches an admin has locked; pending points are the "if it ended
// right now" lean of in-progress matches, surfaced to the UI as a "+N" hint
// and never mixed into confirmed totals.
type RoundPoints struct {
	AviatorScore         float64 `json:"aviatorScore"`
	ProducerScore        float64 `json:"producerScore"`
	PendingAviatorScore  float64 `json:"pendingAviatorScore"`
	PendingProducerScore float64 `json:"pendingProducerScore"`
}

// TournamentPoints is the cup-wide team point summary.
type TournamentPoints struct {
	AviatorScore         float64 `json:"aviatorScore"`
	ProducerScore        float64 `json:"producerScore"`
	PendingAviatorScore  float64 `json:"pendingAviatorScore"`
	PendingProducerScore float64 `json:"pendingProducerScore"`
}

// AggregateRound sums match states into round points.
//
// A completed match is worth one point to the winner, or half a point each
// when it finished all square. An in-progress match with a current leader
// contributes one point to that team's pending total only. Upcoming matches
// contribute nothing.
func AggregateRound(matches []MatchState) RoundPoints {
	var pts RoundPoints
	for _, m := range matches {
		switch m.Status {
		case MatchStatusCompleted:
			switch {
			case m.LeadingTeam == nil:
				pts.AviatorScore += 0.5
				pts.ProducerScore += 0.5
			case *m.LeadingTeam == TeamAviators:
				pts.AviatorScore++
			default:
				pts.ProducerScore++
			}
		case MatchStatusInProgress:
			if m.LeadingTeam == nil {
				break
			}
			if *m.LeadingTeam == TeamAviators {
				pts.PendingAviatorScore++
			} else {
				pts.PendingProducerScore++
			}
		}
	}
	return pts
}

// AggregateTournament sums round points into cup totals. Only confirmed
// round scores count toward the cup; pending round leans are rolled up into
// tournament-level pending totals only when includePending is set, and even
// then stay out of the confirmed fields. The scoreboard has historically
// shown pending hints per round only, so includePending defaults off at the
// API layer.
func AggregateTournament(rounds []RoundPoints, includePending bool) TournamentPoints {
	var pts TournamentPoints
	for _, r := range rounds {
		pts.AviatorScore += r.AviatorScore
		pts.ProducerScore += r.ProducerScore
		if includePending {
			pts.PendingAviatorScore += r.PendingAviatorScore
			pts.PendingProducerScore += r.PendingProducerScore
		}
	}
	return pts
}

package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func completedMatch(winner *Team) MatchState {
	s := MatchState{Status: MatchStatusCompleted, LeadingTeam: winner}
	if winner != nil {
		s.LeadAmount = 2
	}
	return s
}

func inProgressMatch(leader *Team) MatchState {
	s := MatchState{Status: MatchStatusInProgress, LeadingTeam: leader}
	if leader != nil {
		s.LeadAmount = 1
	}
	return s
}

func TestAggregateRound(t *testing.T) {
	tests := []struct {
		name    string
		matches []MatchState
		want    RoundPoints
	}{
		{
			name: "completed win is a full point",
			matches: []MatchState{
				completedMatch(teamPtr(TeamAviators)),
			},
			want: RoundPoints{AviatorScore: 1},
		},
		{
			name: "completed tie splits the point",
			matches: []MatchState{
				completedMatch(nil),
			},
			want: RoundPoints{AviatorScore: 0.5, ProducerScore: 0.5},
		},
		{
			name: "in-progress lean is pending only",
			matches: []MatchState{
				inProgressMatch(teamPtr(TeamProducers)),
			},
			want: RoundPoints{PendingProducerScore: 1},
		},
		{
			name: "all-square in-progress contributes nothing",
			matches: []MatchState{
				inProgressMatch(nil),
			},
			want: RoundPoints{},
		},
		{
			name: "upcoming contributes nothing",
			matches: []MatchState{
				{Status: MatchStatusUpcoming},
			},
			want: RoundPoints{},
		},
		{
			name: "completed win plus in-progress lead",
			matches: []MatchState{
				completedMatch(teamPtr(TeamAviators)),
				inProgressMatch(teamPtr(TeamAviators)),
			},
			want: RoundPoints{AviatorScore: 1, PendingAviatorScore: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AggregateRound(tt.matches))
		})
	}
}

// Aggregating a round equals summing the aggregation of each match alone.
func TestAggregateRoundAdditive(t *testing.T) {
	matches := []MatchState{
		completedMatch(teamPtr(TeamAviators)),
		completedMatch(teamPtr(TeamProducers)),
		completedMatch(nil),
		inProgressMatch(teamPtr(TeamAviators)),
		inProgressMatch(nil),
		{Status: MatchStatusUpcoming},
	}

	whole := AggregateRound(matches)

	var sum RoundPoints
	for _, m := range matches {
		one := AggregateRound([]MatchState{m})
		sum.AviatorScore += one.AviatorScore
		sum.ProducerScore += one.ProducerScore
		sum.PendingAviatorScore += one.PendingAviatorScore
		sum.PendingProducerScore += one.PendingProducerScore
	}

	require.Equal(t, whole, sum)
}

func TestAggregateRoundIdempotent(t *testing.T) {
	matches := []MatchState{
		completedMatch(teamPtr(TeamAviators)),
		inProgressMatch(teamPtr(TeamProducers)),
	}
	require.Equal(t, AggregateRound(matches), AggregateRound(matches))
}

func TestAggregateTournament(t *testing.T) {
	rounds := []RoundPoints{
		{AviatorScore: 2.5, ProducerScore: 1.5, PendingAviatorScore: 1},
		{AviatorScore: 1, ProducerScore: 3, PendingProducerScore: 2},
	}

	confirmed := AggregateTournament(rounds, false)
	require.Equal(t, 3.5, confirmed.AviatorScore)
	require.Equal(t, 4.5, confirmed.ProducerScore)
	require.Zero(t, confirmed.PendingAviatorScore)
	require.Zero(t, confirmed.PendingProducerScore)

	withPending := AggregateTournament(rounds, true)
	require.Equal(t, 3.5, withPending.AviatorScore)
	require.Equal(t, 4.5, withPending.ProducerScore)
	require.Equal(t, 1.0, withPending.PendingAviatorScore)
	require.Equal(t, 2.0, withPending.PendingProducerScore)
}

// Zero pending leans must still serialize explicitly so a standings payload
// built with the pending rollup enabled is distinguishable from one without it.
func TestTournamentPointsSerializesZeroPending(t *testing.T) {
	rounds := []RoundPoints{
		{AviatorScore: 2, ProducerScore: 2},
	}
	payload, err := json.Marshal(AggregateTournament(rounds, true))
	require.NoError(t, err)
	require.Contains(t, string(payload), `"pendingAviatorScore":0`)
	require.Contains(t, string(payload), `"pendingProducerScore":0`)
}

func TestAggregateTournamentEmpty(t *testing.T) {
	require.Equal(t, TournamentPoints{}, AggregateTournament(nil, false))
}

package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// pairResult builds a decided (or partially entered) hole with the given
// counting scores.
func pairResult(hole int, aviator, producer *int) HoleResult {
	return HoleResult{Hole: hole, AviatorScore: aviator, ProducerScore: producer}
}

func TestComputeMatchStateRunning(t *testing.T) {
	// Aviators win holes 1-3, Producers win hole 4, nothing else entered.
	holes := []HoleResult{
		pairResult(1, IntPtr(4), IntPtr(5)),
		pairResult(2, IntPtr(3), IntPtr(4)),
		pairResult(3, IntPtr(4), IntPtr(6)),
		pairResult(4, IntPtr(5), IntPtr(4)),
	}

	state := ComputeMatchState(holes, nil)

	require.NotNil(t, state.LeadingTeam)
	require.Equal(t, TeamAviators, *state.LeadingTeam)
	require.Equal(t, 2, state.LeadAmount)
	require.Equal(t, 5, state.CurrentHole)
	require.Equal(t, MatchStatusInProgress, state.Status)
	require.Empty(t, state.Result)
}

func TestComputeMatchState(t *testing.T) {
	tests := []struct {
		name        string
		holes       []HoleResult
		lockedAt    *int
		wantLeader  *Team
		wantLead    int
		wantCurrent int
		wantStatus  MatchStatus
		wantResult  string
	}{
		{
			name:        "no scores at all",
			holes:       nil,
			wantLeader:  nil,
			wantCurrent: 1,
			wantStatus:  MatchStatusUpcoming,
		},
		{
			name: "halved holes stay all square",
			holes: []HoleResult{
				pairResult(1, IntPtr(4), IntPtr(4)),
				pairResult(2, IntPtr(5), IntPtr(5)),
			},
			wantLeader:  nil,
			wantLead:    0,
			wantCurrent: 3,
			wantStatus:  MatchStatusInProgress,
		},
		{
			name: "partially entered hole stays undecided",
			holes: []HoleResult{
				pairResult(1, IntPtr(4), nil),
			},
			wantLeader:  nil,
			wantLead:    0,
			wantCurrent: 1,
			wantStatus:  MatchStatusInProgress,
		},
		{
			name: "gap hole pins currentHole below later scores",
			holes: []HoleResult{
				pairResult(1, IntPtr(4), IntPtr(5)),
				pairResult(3, IntPtr(4), IntPtr(5)),
			},
			wantLeader:  teamPtr(TeamAviators),
			wantLead:    2,
			wantCurrent: 2,
			wantStatus:  MatchStatusInProgress,
		},
		{
			name:        "locked after full 18",
			holes:       fullEighteen(3, 0),
			lockedAt:    IntPtr(19),
			wantLeader:  teamPtr(TeamAviators),
			wantLead:    3,
			wantCurrent: 19,
			wantStatus:  MatchStatusCompleted,
			wantResult:  "3 UP",
		},
		{
			name: "locked early renders N&M",
			holes: []HoleResult{
				pairResult(1, IntPtr(3), IntPtr(5)),
				pairResult(2, IntPtr(3), IntPtr(5)),
				pairResult(3, IntPtr(3), IntPtr(5)),
				pairResult(4, IntPtr(3), IntPtr(5)),
			},
			lockedAt:    IntPtr(16),
			wantLeader:  teamPtr(TeamAviators),
			wantLead:    4,
			wantCurrent: 5,
			wantStatus:  MatchStatusCompleted,
			wantResult:  "4&2",
		},
		{
			name:        "locked all square",
			holes:       fullEighteen(0, 0),
			lockedAt:    IntPtr(19),
			wantLeader:  nil,
			wantLead:    0,
			wantCurrent: 19,
			wantStatus:  MatchStatusCompleted,
			wantResult:  "AS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := ComputeMatchState(tt.holes, tt.lockedAt)
			if tt.wantLeader == nil {
				require.Nil(t, state.LeadingTeam)
			} else {
				require.NotNil(t, state.LeadingTeam)
				require.Equal(t, *tt.wantLeader, *state.LeadingTeam)
			}
			require.Equal(t, tt.wantLead, state.LeadAmount)
			require.Equal(t, tt.wantCurrent, state.CurrentHole)
			require.Equal(t, tt.wantStatus, state.Status)
			require.Equal(t, tt.wantResult, state.Result)
		})
	}
}

func teamPtr(t Team) *Team { return &t }

// fullEighteen builds 18 decided holes where the Aviators win aviatorWins
// holes, the Producers win producerWins, and the rest are halved.
func fullEighteen(aviatorWins, producerWins int) []HoleResult {
	holes := make([]HoleResult, 0, MatchHoles)
	for n := 1; n <= MatchHoles; n++ {
		switch {
		case aviatorWins > 0:
			holes = append(holes, pairResult(n, IntPtr(4), IntPtr(5)))
			aviatorWins--
		case producerWins > 0:
			holes = append(holes, pairResult(n, IntPtr(5), IntPtr(4)))
			producerWins--
		default:
			holes = append(holes, pairResult(n, IntPtr(4), IntPtr(4)))
		}
	}
	return holes
}

// Swapping which side every score belongs to swaps the leader but not the
// lead amount.
func TestComputeMatchStateSymmetry(t *testing.T) {
	holes := []HoleResult{
		pairResult(1, IntPtr(4), IntPtr(5)),
		pairResult(2, IntPtr(5), IntPtr(3)),
		pairResult(3, IntPtr(4), IntPtr(5)),
		pairResult(4, IntPtr(4), IntPtr(5)),
		pairResult(5, IntPtr(4), nil),
	}
	swapped := make([]HoleResult, len(holes))
	for i, h := range holes {
		swapped[i] = pairResult(h.Hole, h.ProducerScore, h.AviatorScore)
	}

	a := ComputeMatchState(holes, nil)
	b := ComputeMatchState(swapped, nil)

	require.Equal(t, a.LeadAmount, b.LeadAmount)
	require.Equal(t, a.CurrentHole, b.CurrentHole)
	require.NotNil(t, a.LeadingTeam)
	require.NotNil(t, b.LeadingTeam)
	require.Equal(t, TeamAviators, *a.LeadingTeam)
	require.Equal(t, TeamProducers, *b.LeadingTeam)
}

func TestComputeMatchStateIdempotent(t *testing.T) {
	holes := fullEighteen(5, 2)
	first := ComputeMatchState(holes, nil)
	second := ComputeMatchState(holes, nil)
	require.Equal(t, first, second)
}

func TestBuildHoleResultsBestBall(t *testing.T) {
	a1, a2 := uuid.New(), uuid.New()
	p1, p2 := uuid.New(), uuid.New()

	in := MatchInput{
		Format: FormatBestBall,
		Holes: []HoleSetup{
			{Number: 1, Par: 4, HandicapRank: 1},
			{Number: 2, Par: 3, HandicapRank: 18},
		},
		Aviators: []PlayerInput{
			{ID: a1, CourseHandicap: 19},
			{ID: a2, CourseHandicap: 0},
		},
		Producers: []PlayerInput{
			{ID: p1, CourseHandicap: 4},
			{ID: p2, CourseHandicap: 0},
		},
		Scores: ScoreSheet{
			{Hole: 1, PlayerID: a1}: 6, // two strokes on the rank-1 hole: net 4
			{Hole: 1, PlayerID: a2}: 5,
			{Hole: 1, PlayerID: p1}: 5, // one stroke: net 4
			// p2 has not entered hole 1
			{Hole: 2, PlayerID: a2}: 3,
			{Hole: 2, PlayerID: p1}: 4,
			{Hole: 2, PlayerID: p2}: 3,
		},
	}

	holes := BuildHoleResults(in)
	require.Len(t, holes, 2)

	h1 := holes[0]
	require.Equal(t, 1, h1.Hole)
	require.NotNil(t, h1.AviatorScore)
	require.Equal(t, 4, *h1.AviatorScore)
	require.NotNil(t, h1.CountingAviator)
	require.Equal(t, a1, *h1.CountingAviator)
	require.NotNil(t, h1.ProducerScore)
	require.Equal(t, 4, *h1.ProducerScore)
	require.NotNil(t, h1.CountingProducer)
	require.Equal(t, p1, *h1.CountingProducer)
	require.Nil(t, h1.Winner())

	h2 := holes[1]
	require.NotNil(t, h2.AviatorScore)
	require.Equal(t, 3, *h2.AviatorScore)
	require.NotNil(t, h2.ProducerScore)
	require.Equal(t, 3, *h2.ProducerScore)
}

func TestBuildHoleResultsScramble(t *testing.T) {
	in := MatchInput{
		Format: FormatScramble,
		Holes: []HoleSetup{
			{Number: 1, Par: 4, HandicapRank: 1},
			{Number: 2, Par: 5, HandicapRank: 2},
		},
		TeamScores: TeamScoreSheet{
			{Hole: 1, Team: TeamAviators}:  4,
			{Hole: 1, Team: TeamProducers}: 5,
			{Hole: 2, Team: TeamAviators}:  5,
		},
	}

	holes, state := ComputeMatch(in)
	require.Len(t, holes, 2)

	// Shared gross, no handicap, no per-player detail.
	require.Empty(t, holes[0].Aviators)
	require.Nil(t, holes[0].CountingAviator)
	w := holes[0].Winner()
	require.NotNil(t, w)
	require.Equal(t, TeamAviators, *w)

	// Hole 2 has only one side entered: undecided.
	require.False(t, holes[1].Decided())

	require.Equal(t, 1, state.LeadAmount)
	require.Equal(t, 2, state.CurrentHole)
	require.Equal(t, MatchStatusInProgress, state.Status)
}

func TestBuildHoleResultsSortsByHoleNumber(t *testing.T) {
	in := MatchInput{
		Format: FormatScramble,
		Holes: []HoleSetup{
			{Number: 3, Par: 4},
			{Number: 1, Par: 4},
			{Number: 2, Par: 4},
		},
	}
	holes := BuildHoleResults(in)
	require.Equal(t, []int{1, 2, 3}, []int{holes[0].Hole, holes[1].Hole, holes[2].Hole})
}

func TestScoreSheetGross(t *testing.T) {
	player := uuid.New()
	other := uuid.New()
	sheet := ScoreSheet{{Hole: 7, PlayerID: player}: 5}

	got := sheet.Gross(7, player)
	require.NotNil(t, got)
	require.Equal(t, 5, *got)

	// Same hole, different player: distinct cells even if the two players
	// shared a display name.
	require.Nil(t, sheet.Gross(7, other))
	require.Nil(t, sheet.Gross(8, player))
}

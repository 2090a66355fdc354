package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rowdycup/scoreboard/internal/models"
	"github.com/rowdycup/scoreboard/internal/scoring"
)

// The response builders take their rows as arguments so the handlers own
// every query (and every query error); these tests pin the field mapping.

func TestMatchResponseMapsLineup(t *testing.T) {
	match := &models.Match{
		ID:      uuid.New(),
		RoundID: uuid.New(),
		Name:    "Match 1",
		Format:  scoring.FormatBestBall,
	}
	playerID := uuid.New()
	lineup := []models.MatchPlayer{
		{
			PlayerID: playerID,
			Player:   models.Player{Name: "Sam"},
			Team:     scoring.TeamAviators,
		},
	}
	state := scoring.MatchState{
		Status:      scoring.MatchStatusInProgress,
		LeadingTeam: teamPtr(scoring.TeamAviators),
		LeadAmount:  2,
		CurrentHole: 7,
	}

	resp := matchResponse(match, lineup, state)

	require.Equal(t, match.ID.String(), resp.ID)
	require.Equal(t, match.RoundID.String(), resp.RoundID)
	require.Equal(t, "best_ball", resp.Format)
	require.Len(t, resp.Players, 1)
	require.Equal(t, playerID.String(), resp.Players[0].PlayerID)
	require.Equal(t, "Sam", resp.Players[0].Name)
	require.Equal(t, "aviators", resp.Players[0].Team)
	require.Equal(t, state, resp.State)
}

func TestMatchResponseEmptyLineup(t *testing.T) {
	resp := matchResponse(&models.Match{ID: uuid.New()}, nil, scoring.MatchState{})
	require.NotNil(t, resp.Players)
	require.Empty(t, resp.Players)
}

func TestRoundResponseMapsFields(t *testing.T) {
	round := &models.Round{
		ID:           uuid.New(),
		TournamentID: uuid.New(),
		CourseID:     uuid.New(),
		RoundNumber:  2,
		Name:         "Saturday Singles",
		Date:         time.Date(2025, 9, 13, 0, 0, 0, 0, time.UTC),
		Status:       models.RoundStatusActive,
	}

	resp := roundResponse(round, "Chambers Bay", 6)

	require.Equal(t, round.ID.String(), resp.ID)
	require.Equal(t, "Chambers Bay", resp.CourseName)
	require.Equal(t, 2, resp.RoundNumber)
	require.Equal(t, "2025-09-13", resp.Date)
	require.Equal(t, "active", resp.Status)
	require.Equal(t, int64(6), resp.MatchCount)
}

func TestCourseResponseMapsHoles(t *testing.T) {
	course := &models.Course{
		ID:    uuid.New(),
		Name:  "Chambers Bay",
		City:  "University Place",
		State: "WA",
	}
	rank := 5
	holes := []models.Hole{
		{Number: 1, Par: 4, HandicapRank: &rank},
		{Number: 2, Par: 3},
	}

	resp := courseResponse(course, holes)

	require.Equal(t, course.ID.String(), resp.ID)
	require.Equal(t, "Chambers Bay", resp.Name)
	require.Len(t, resp.Holes, 2)
	require.Equal(t, 1, resp.Holes[0].Number)
	require.Equal(t, &rank, resp.Holes[0].HandicapRank)
	require.Nil(t, resp.Holes[1].HandicapRank)
}

func TestTournamentResponseMapsFields(t *testing.T) {
	start := time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC)
	tournament := &models.Tournament{
		ID:        uuid.New(),
		Name:      "Rowdy Cup 2025",
		Year:      2025,
		Status:    models.TournamentStatusActive,
		StartDate: &start,
	}

	resp := tournamentResponse(tournament, 3)

	require.Equal(t, tournament.ID.String(), resp.ID)
	require.Equal(t, 2025, resp.Year)
	require.Equal(t, "active", resp.Status)
	require.NotNil(t, resp.StartDate)
	require.Equal(t, "2025-09-12", *resp.StartDate)
	require.Nil(t, resp.EndDate)
	require.Equal(t, int64(3), resp.RoundCount)
}

func teamPtr(team scoring.Team) *scoring.Team {
	return &team
}

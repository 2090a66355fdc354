package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBestBall(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()

	tests := []struct {
		name    string
		entries []BallEntry
		wantID  *uuid.UUID
		wantNet int
	}{
		{
			name: "lowest net wins",
			entries: []BallEntry{
				NewBallEntry(p1, IntPtr(5), 0),
				NewBallEntry(p2, IntPtr(4), 0),
			},
			wantID:  &p2,
			wantNet: 4,
		},
		{
			name: "handicap stroke flips the pick",
			entries: []BallEntry{
				NewBallEntry(p1, IntPtr(5), 2),
				NewBallEntry(p2, IntPtr(4), 0),
			},
			wantID:  &p1,
			wantNet: 3,
		},
		{
			name: "missing gross is skipped even with a better nominal net",
			entries: []BallEntry{
				NewBallEntry(p1, IntPtr(4), 0),
				{PlayerID: p2, Gross: nil, Strokes: 1, Net: IntPtr(3)},
			},
			wantID:  &p1,
			wantNet: 4,
		},
		{
			name: "net tie keeps first in input order",
			entries: []BallEntry{
				NewBallEntry(p1, IntPtr(4), 0),
				NewBallEntry(p2, IntPtr(5), 1),
			},
			wantID:  &p1,
			wantNet: 4,
		},
		{
			name: "no scores entered",
			entries: []BallEntry{
				NewBallEntry(p1, nil, 1),
				NewBallEntry(p2, nil, 0),
			},
			wantID: nil,
		},
		{
			name:    "empty team",
			entries: nil,
			wantID:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BestBall(tt.entries)
			if tt.wantID == nil {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.Equal(t, *tt.wantID, got.PlayerID)
			require.NotNil(t, got.Net)
			require.Equal(t, tt.wantNet, *got.Net)
		})
	}
}

// The selected ball's net score is always the minimum over the entries that
// have a gross score.
func TestBestBallIsMinimumOfFiltered(t *testing.T) {
	entries := []BallEntry{
		NewBallEntry(uuid.New(), IntPtr(6), 1),
		NewBallEntry(uuid.New(), nil, 2),
		NewBallEntry(uuid.New(), IntPtr(4), 0),
		NewBallEntry(uuid.New(), IntPtr(7), 3),
	}

	got := BestBall(entries)
	require.NotNil(t, got)

	for _, e := range entries {
		if e.Gross == nil {
			continue
		}
		require.LessOrEqual(t, *got.Net, *e.Net)
	}
}

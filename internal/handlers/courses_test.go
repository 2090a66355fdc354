package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rowdycup/scoreboard/internal/scoring"
)

// eighteenHoles builds a fully configured course: par 4s with ranks 1..18.
func eighteenHoles() []HoleRequest {
	holes := make([]HoleRequest, 0, 18)
	for n := 1; n <= 18; n++ {
		rank := n
		holes = append(holes, HoleRequest{Number: n, Par: 4, HandicapRank: &rank})
	}
	return holes
}

func TestValidateHoles(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]HoleRequest) []HoleRequest
		wantMsg string
	}{
		{
			name:   "fully configured course",
			mutate: func(h []HoleRequest) []HoleRequest { return h },
		},
		{
			name: "ranks may be left null",
			mutate: func(h []HoleRequest) []HoleRequest {
				for i := range h {
					h[i].HandicapRank = nil
				}
				return h
			},
		},
		{
			name: "partially ranked course is allowed",
			mutate: func(h []HoleRequest) []HoleRequest {
				h[17].HandicapRank = nil
				return h
			},
		},
		{
			name:    "wrong hole count",
			mutate:  func(h []HoleRequest) []HoleRequest { return h[:17] },
			wantMsg: "a course needs exactly 18 holes",
		},
		{
			name: "duplicate hole number",
			mutate: func(h []HoleRequest) []HoleRequest {
				h[1].Number = 1
				return h
			},
			wantMsg: "hole numbers must be unique",
		},
		{
			name: "duplicate handicap rank",
			mutate: func(h []HoleRequest) []HoleRequest {
				h[1].HandicapRank = scoring.IntPtr(1)
				return h
			},
			wantMsg: "handicap ranks must be unique",
		},
		{
			name: "rank out of range",
			mutate: func(h []HoleRequest) []HoleRequest {
				h[0].HandicapRank = scoring.IntPtr(19)
				return h
			},
			wantMsg: "handicap ranks must be between 1 and 18",
		},
		{
			name: "silly par",
			mutate: func(h []HoleRequest) []HoleRequest {
				h[0].Par = 2
				return h
			},
			wantMsg: "par must be between 3 and 6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.wantMsg, validateHoles(tt.mutate(eighteenHoles())))
		})
	}
}

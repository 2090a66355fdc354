// Package models defines the data structures that map to database tables.
// GORM uses these structs to generate SQL queries and map rows back to Go
// values; the struct tags tell it column types, constraints, and indexes.
//
// The data model represents the Rowdy Cup, a recurring two-team golf event:
//   - A Tournament is one edition of the cup (Aviators vs. Producers)
//   - Tournaments contain Rounds played at Courses
//   - Rounds contain Matches in one of four formats
//   - Matches track Scores per player per hole (or per team, for scramble
//     formats)
//
// Derived values — net scores, match status, round and tournament points —
// are recomputed from these raw rows by internal/scoring on every read.
// Score rows do cache the computed net score next to the gross, but nothing
// ever reads it back into a computation; it exists for ad-hoc SQL and data
// exports only.
package models

import (
	"time"

	// UUID primary keys are safe to generate client-side and don't leak
	// record counts the way auto-incrementing integers do.
	"github.com/google/uuid"

	"github.com/rowdycup/scoreboard/internal/scoring"
)

// --- Enums ---
// Named string types plus constants stand in for enums: type-safe in Go,
// human-readable in the database. Team, MatchFormat, and MatchStatus live in
// internal/scoring because the pure engine needs them too; the types below
// are persistence-only lifecycles.

// UserRole is a user's permission level. Admins manage tournament structure
// and lock matches; players enter scores and view everything.
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRolePlayer UserRole = "player"
)

// TournamentStatus tracks the lifecycle of one cup edition.
type TournamentStatus string

const (
	TournamentStatusUpcoming  TournamentStatus = "upcoming"
	TournamentStatusActive    TournamentStatus = "active"
	TournamentStatusCompleted TournamentStatus = "completed"
)

// RoundStatus tracks the lifecycle of a single round within a tournament.
type RoundStatus string

const (
	RoundStatusScheduled RoundStatus = "scheduled"
	RoundStatusActive    RoundStatus = "active"
	RoundStatusCompleted RoundStatus = "completed"
)

// --- Models ---

// User is a registered account. Players and spectators log in to enter and
// watch scores; a user may or may not be linked to a Player on the roster.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	DisplayName  string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         UserRole  `gorm:"type:user_role;not null;default:'player'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Player is a roster member of one of the two fixed teams. Players persist
// across tournaments; which matches they play is tracked via MatchPlayer.
//
// DefaultHandicap is the fallback course handicap used when no round-specific
// override has been entered (see PlayerRoundHandicap). Nil means scratch.
type Player struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string       `gorm:"not null"`
	Team            scoring.Team `gorm:"type:team_name;not null"`
	UserID          *uuid.UUID   `gorm:"type:uuid"` // Optional link to a login account
	User            *User        `gorm:"foreignKey:UserID"`
	DefaultHandicap *int         // Fallback course handicap; nil = scratch
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Tournament is one edition of the Rowdy Cup. Only one tournament is active
// at a time; the scoreboard always shows the active one.
type Tournament struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string           `gorm:"not null"`
	Year      int              `gorm:"not null"`
	Status    TournamentStatus `gorm:"type:tournament_status;not null;default:'upcoming'"`
	StartDate *time.Time
	EndDate   *time.Time
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	Creator   User      `gorm:"foreignKey:CreatedBy"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Rounds    []Round `gorm:"foreignKey:TournamentID"`
}

// Course is a golf course where rounds are played.
type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	City      string    `gorm:"not null;default:''"`
	State     string    `gorm:"not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Holes     []Hole `gorm:"foreignKey:CourseID"`
}

// Hole stores per-hole details for a course.
//
// HandicapRank is the hole's difficulty ranking (1 = hardest, 18 = easiest)
// used to allocate handicap strokes. It is nullable because courses are
// often entered before anyone has the scorecard handy; an unranked hole
// simply never receives strokes. When fully configured, ranks are unique
// 1..18 within the course (enforced at the API boundary).
type Hole struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_hole"`
	Course       Course    `gorm:"foreignKey:CourseID"`
	Number       int       `gorm:"not null;uniqueIndex:idx_course_hole"` // 1–18
	Par          int       `gorm:"not null"`
	HandicapRank *int      // 1–18, nil until configured
}

// Round is a single day of play within a tournament.
type Round struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TournamentID uuid.UUID   `gorm:"type:uuid;not null"`
	Tournament   Tournament  `gorm:"foreignKey:TournamentID"`
	CourseID     uuid.UUID   `gorm:"type:uuid;not null"`
	Course       Course      `gorm:"foreignKey:CourseID"`
	RoundNumber  int         `gorm:"not null;default:1"`
	Name         string      `gorm:"not null;default:''"` // e.g. "Friday Four-Ball"
	Date         time.Time   `gorm:"not null"`
	Status       RoundStatus `gorm:"type:round_status;not null;default:'scheduled'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Matches      []Match `gorm:"foreignKey:RoundID"`
}

// PlayerRoundHandicap is a round-specific course handicap override entered
// by an admin. Different courses play to different handicaps, so the same
// player can carry a different number each round. When no row exists the
// player's DefaultHandicap applies.
type PlayerRoundHandicap struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoundID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_round_player_handicap"`
	Round          Round     `gorm:"foreignKey:RoundID"`
	PlayerID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_round_player_handicap"`
	Player         Player    `gorm:"foreignKey:PlayerID"`
	CourseHandicap int       `gorm:"not null"` // >= 0; no upper bound is enforced
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Match is one contest within a round: singles, best ball, scramble, or
// shamble. Who plays is tracked via MatchPlayer.
//
// A match never completes on its own — it stays in_progress through all 18
// holes until an admin locks it. LockedHole records the engine's CurrentHole
// at lock time (19 when locked after a full 18); the result string is
// derived from it on every read rather than stored.
type Match struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoundID    uuid.UUID           `gorm:"type:uuid;not null"`
	Round      Round               `gorm:"foreignKey:RoundID"`
	Name       string              `gorm:"not null;default:''"` // e.g. "Match 3"
	Format     scoring.MatchFormat `gorm:"type:match_format;not null"`
	Locked     bool                `gorm:"not null;default:false"`
	LockedHole *int                // CurrentHole recorded when the admin locked the match
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Players    []MatchPlayer `gorm:"foreignKey:MatchID"`
}

// MatchPlayer places a Player into a Match on one side. The Team column is
// denormalized from Player.Team so a historical match keeps its lineup even
// if the roster later changes sides.
type MatchPlayer struct {
	ID       uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MatchID  uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_match_player"`
	Match    Match        `gorm:"foreignKey:MatchID"`
	PlayerID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_match_player"`
	Player   Player       `gorm:"foreignKey:PlayerID"`
	Team     scoring.Team `gorm:"type:team_name;not null"`
}

// Score records one player's gross strokes on one hole of one match.
// Updates overwrite in place; no history is kept.
//
// HandicapStrokes and NetScore are written alongside the gross as a
// convenience cache — the scoring engine recomputes them from raw data on
// every read and never trusts these columns.
type Score struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MatchID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_player_hole"`
	Match           Match     `gorm:"foreignKey:MatchID"`
	PlayerID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_player_hole"`
	Player          Player    `gorm:"foreignKey:PlayerID"`
	HoleNumber      int       `gorm:"not null;uniqueIndex:idx_match_player_hole"` // 1–18
	GrossScore      int       `gorm:"not null"`                                   // >= 1
	HandicapStrokes int       `gorm:"not null;default:0"`
	NetScore        int       `gorm:"not null"`
	EnteredBy       uuid.UUID `gorm:"type:uuid;not null"`
	Enterer         User      `gorm:"foreignKey:EnteredBy"`
	EnteredAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// TeamScore records the shared team gross on one hole for scramble and
// shamble matches, where there is no per-player score.
type TeamScore struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MatchID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_match_team_hole"`
	Match      Match        `gorm:"foreignKey:MatchID"`
	Team       scoring.Team `gorm:"type:team_name;not null;uniqueIndex:idx_match_team_hole"`
	HoleNumber int          `gorm:"not null;uniqueIndex:idx_match_team_hole"` // 1–18
	GrossScore int          `gorm:"not null"`
	EnteredBy  uuid.UUID    `gorm:"type:uuid;not null"`
	Enterer    User         `gorm:"foreignKey:EnteredBy"`
	EnteredAt  time.Time    `gorm:"autoCreateTime"`
	UpdatedAt  time.Time    `gorm:"autoUpdateTime"`
}

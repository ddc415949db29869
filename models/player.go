package models

import "github.com/uptrace/bun"

// Column names of the players table. They double as the JSON keys of the
// store's REST payload.
const (
	ColID                  = "id"
	ColName                = "name"
	ColClub                = "club"
	ColPosition            = "position"
	ColNationality         = "nationality"
	ColGoals               = "goals"
	ColAssists             = "assists"
	ColGoalsPerMatch       = "goals_per_match"
	ColShootingAccuracy    = "shooting_accuracy_percent"
	ColShotsOnTarget       = "shots_on_target"
	ColTackles             = "tackles"
	ColInterceptions       = "interceptions"
	ColTackleSuccess       = "tackle_success_percent"
	ColSaves               = "saves"
	ColGoalsConceded       = "goals_conceded"
	ColRedCards            = "red_cards"
	ColBigChancesMissed    = "big_chances_missed"
	ColErrorsLeadingToGoal = "errors_leading_to_goal"
	ColOwnGoals            = "own_goals"
)

// PositionMidfielder is the position value used for the midfielder ranking.
const PositionMidfielder = "Midfielder"

// Columns lists every column of the players table in table order.
var Columns = append([]string{ColID, ColName, ColClub, ColPosition, ColNationality}, StatColumns...)

// StatColumns lists every numeric column in table order.
var StatColumns = []string{
	ColGoals,
	ColAssists,
	ColGoalsPerMatch,
	ColShootingAccuracy,
	ColShotsOnTarget,
	ColTackles,
	ColInterceptions,
	ColTackleSuccess,
	ColSaves,
	ColGoalsConceded,
	ColRedCards,
	ColBigChancesMissed,
	ColErrorsLeadingToGoal,
	ColOwnGoals,
}

// Player is one player-season row. Every attribute except Name may be null.
type Player struct {
	bun.BaseModel `bun:"table:plp,alias:p"`

	ID          *int64  `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Name        string  `bun:"name,notnull" json:"name"`
	Club        *string `bun:"club" json:"club"`
	Position    *string `bun:"position" json:"position"`
	Nationality *string `bun:"nationality" json:"nationality"`

	Goals               *float64 `bun:"goals" json:"goals"`
	Assists             *float64 `bun:"assists" json:"assists"`
	GoalsPerMatch       *float64 `bun:"goals_per_match" json:"goals_per_match"`
	ShootingAccuracy    *float64 `bun:"shooting_accuracy_percent" json:"shooting_accuracy_percent"`
	ShotsOnTarget       *float64 `bun:"shots_on_target" json:"shots_on_target"`
	Tackles             *float64 `bun:"tackles" json:"tackles"`
	Interceptions       *float64 `bun:"interceptions" json:"interceptions"`
	TackleSuccess       *float64 `bun:"tackle_success_percent" json:"tackle_success_percent"`
	Saves               *float64 `bun:"saves" json:"saves"`
	GoalsConceded       *float64 `bun:"goals_conceded" json:"goals_conceded"`
	RedCards            *float64 `bun:"red_cards" json:"red_cards"`
	BigChancesMissed    *float64 `bun:"big_chances_missed" json:"big_chances_missed"`
	ErrorsLeadingToGoal *float64 `bun:"errors_leading_to_goal" json:"errors_leading_to_goal"`
	OwnGoals            *float64 `bun:"own_goals" json:"own_goals"`
}

// Stat returns the value of a numeric column, or nil when it is null or the
// column is not a stat.
func (p *Player) Stat(col string) *float64 {
	if ref := p.statRef(col); ref != nil {
		return *ref
	}
	return nil
}

// TotalContributions returns goals + assists. ok is false unless both are set.
func (p *Player) TotalContributions() (total float64, ok bool) {
	if p.Goals == nil || p.Assists == nil {
		return 0, false
	}
	return *p.Goals + *p.Assists, true
}

func (p *Player) statRef(col string) **float64 {
	switch col {
	case ColGoals:
		return &p.Goals
	case ColAssists:
		return &p.Assists
	case ColGoalsPerMatch:
		return &p.GoalsPerMatch
	case ColShootingAccuracy:
		return &p.ShootingAccuracy
	case ColShotsOnTarget:
		return &p.ShotsOnTarget
	case ColTackles:
		return &p.Tackles
	case ColInterceptions:
		return &p.Interceptions
	case ColTackleSuccess:
		return &p.TackleSuccess
	case ColSaves:
		return &p.Saves
	case ColGoalsConceded:
		return &p.GoalsConceded
	case ColRedCards:
		return &p.RedCards
	case ColBigChancesMissed:
		return &p.BigChancesMissed
	case ColErrorsLeadingToGoal:
		return &p.ErrorsLeadingToGoal
	case ColOwnGoals:
		return &p.OwnGoals
	}
	return nil
}

func (p *Player) textRef(col string) **string {
	switch col {
	case ColClub:
		return &p.Club
	case ColPosition:
		return &p.Position
	case ColNationality:
		return &p.Nationality
	}
	return nil
}

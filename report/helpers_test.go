package report

import "github.com/padraicbc/pldash/models"

func f(v float64) *float64 { return &v }
func s(v string) *string { return &v }

// squad is a small mixed fixture over three clubs.
func squad() []models.Player {
	return []models.Player{
		{Name: "Ederson", Club: s("Manchester-City"), Position: s("Goalkeeper"), Nationality: s("Brazil"),
			Saves: f(59), GoalsConceded: f(23), Goals: f(0), Assists: f(1), RedCards: f(0)},
		{Name: "De Bruyne", Club: s("Manchester-City"), Position: s("Midfielder"), Nationality: s("Belgium"),
			Goals: f(13), Assists: f(16), GoalsPerMatch: f(0.37), ShootingAccuracy: f(41), ShotsOnTarget: f(42),
			Tackles: f(20), Interceptions: f(9), TackleSuccess: f(55), BigChancesMissed: f(4)},
		{Name: "Salah", Club: s("Liverpool"), Position: s("Forward"), Nationality: s("Egypt"),
			Goals: f(23), Assists: f(13), GoalsPerMatch: f(0.61), ShootingAccuracy: f(46), ShotsOnTarget: f(73),
			BigChancesMissed: f(22), RedCards: f(0)},
		{Name: "Alisson", Club: s("Liverpool"), Position: s("Goalkeeper"), Nationality: s("Brazil"),
			Saves: f(80), GoalsConceded: f(26), RedCards: f(1)},
		{Name: "Henderson", Club: s("Liverpool"), Position: s("Midfielder"), Nationality: s("England"),
			Goals: f(2), Assists: f(5), Tackles: f(40), Interceptions: f(18), TackleSuccess: f(63),
			OwnGoals: f(1)},
		{Name: "Kane", Club: s("Tottenham-Hotspur"), Position: s("Forward"), Nationality: s("England"),
			Goals: f(17), Assists: nil, GoalsPerMatch: f(0.58), BigChancesMissed: f(12)},
		{Name: "Trialist", Club: nil, Position: nil, Nationality: nil},
	}
}

func fullSnapshot(players []models.Player) *Snapshot {
	return NewSnapshot(players, models.Columns)
}

func names[T any](rows []T, name func(T) string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = name(r)
	}
	return out
}

func rankedName(r Ranked) string { return r.Name }

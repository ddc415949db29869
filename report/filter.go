package report

import (
	"slices"

	"github.com/padraicbc/pldash/models"
)

// AllClubs selects every row in Filter.
const AllClubs = "All"

// Filter keeps the rows whose club equals club, in their original order.
// AllClubs returns players unchanged. Rows with a null club only survive
// AllClubs.
func Filter(players []models.Player, club string) []models.Player {
	if club == AllClubs {
		return players
	}
	out := make([]models.Player, 0)
	for i := range players {
		if c := players[i].Club; c != nil && *c == club {
			out = append(out, players[i])
		}
	}
	return out
}

// Clubs returns the distinct non-null clubs, sorted.
func Clubs(players []models.Player) []string {
	out := make([]string, 0)
	for i := range players {
		if c := players[i].Club; c != nil {
			out = append(out, *c)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

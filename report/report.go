package report

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/padraicbc/pldash/models"
)

// Status tells whether a derivation produced rows.
type Status string

const (
	StatusOK     Status = "ok"
	StatusNoData Status = "no_data"
)

// Result is the dataset behind one chart. Rows is nil when Status is
// StatusNoData.
type Result struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Status Status `json:"status"`
	Rows   any    `json:"rows,omitempty"`
}

// Skip records a derivation left out because the table lacks its columns.
type Skip struct {
	Name    string   `json:"name"`
	Missing []string `json:"missing"`
}

// Report is everything one dashboard session renders.
type Report struct {
	Club    string   `json:"club"`
	Loaded  int      `json:"loaded"`
	Showing int      `json:"showing"`
	Clubs   []string `json:"clubs"`
	Results []Result `json:"results"`
	Skipped []Skip   `json:"skipped"`
}

// Result looks up a result by derivation name.
func (r *Report) Result(name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return Result{}, false
}

// Derivation pairs the columns a chart needs with the function producing its
// rows from the club-filtered players.
type Derivation struct {
	Name     string
	Title    string
	Required []string

	derive func([]models.Player) (rows any, n int)
}

func rowsOf[T any](fn func([]models.Player) []T) func([]models.Player) (any, int) {
	return func(players []models.Player) (any, int) {
		rows := fn(players)
		return rows, len(rows)
	}
}

var derivations = buildDerivations()

// Derivations returns the derivation table in evaluation order.
func Derivations() []Derivation {
	return slices.Clone(derivations)
}

func buildDerivations() []Derivation {
	ds := []Derivation{
		{
			Name:     "goals_per_match",
			Title:    "Goals per Match Distribution",
			Required: []string{models.ColGoalsPerMatch},
			derive:   rowsOf(GoalsPerMatch),
		},
		{
			Name:     "position_breakdown",
			Title:    "Player Position Breakdown",
			Required: []string{models.ColPosition},
			derive:   rowsOf(PositionBreakdown),
		},
		{
			Name:     "shooting_accuracy",
			Title:    "Shooting Accuracy vs Goals",
			Required: []string{models.ColShootingAccuracy, models.ColGoals, models.ColShotsOnTarget},
			derive:   rowsOf(ShootingAccuracy),
		},
		{
			Name:     "tackles_interceptions",
			Title:    "Tackles vs Interceptions",
			Required: []string{models.ColTackles, models.ColInterceptions, models.ColTackleSuccess},
			derive:   rowsOf(TacklesInterceptions),
		},
		{
			Name:     "goalkeeper_performance",
			Title:    "Goalkeeper Performance: Saves vs Goals Conceded",
			Required: []string{models.ColSaves, models.ColGoalsConceded},
			derive:   rowsOf(GoalkeeperPerformance),
		},
		{
			Name:     "top_nationalities",
			Title:    "Top Nationalities",
			Required: []string{models.ColNationality},
			derive:   rowsOf(TopNationalities),
		},
		{
			Name:     "position_averages",
			Title:    "Average Goals and Assists by Position",
			Required: []string{models.ColPosition, models.ColGoals, models.ColAssists},
			derive:   rowsOf(AveragesByPosition),
		},
		{
			Name:     "top_midfielders",
			Title:    "Top 10 Midfielders by Assists",
			Required: []string{models.ColPosition, models.ColAssists},
			derive:   rowsOf(TopMidfielders),
		},
	}

	for _, col := range RiskColumns {
		ds = append(ds, Derivation{
			Name:     "top_" + col,
			Title:    "Top 10 Players by " + columnTitle(col),
			Required: []string{col},
			derive: rowsOf(func(players []models.Player) []Ranked {
				return TopByMetric(players, col)
			}),
		})
	}

	return append(ds,
		Derivation{
			Name:     "top_contributions",
			Title:    "Top 10 Players by Total Contributions",
			Required: []string{models.ColGoals, models.ColAssists},
			derive:   rowsOf(TopContributions),
		},
		Derivation{
			Name:   "filtered_players",
			Title:  "Filtered Player Data",
			derive: rowsOf(func(players []models.Player) []models.Player {
				return slices.Clone(players)
			}),
		},
	)
}

// Run filters the snapshot by club and evaluates every derivation. It never
// fails: missing columns skip a derivation and empty output is StatusNoData.
// An empty club means AllClubs.
func Run(snap *Snapshot, club string) *Report {
	if club == "" {
		club = AllClubs
	}
	filtered := Filter(snap.players, club)

	rep := &Report{
		Club:    club,
		Loaded:  len(snap.players),
		Showing: len(filtered),
		Clubs:   Clubs(snap.players),
		Results: make([]Result, 0, len(derivations)),
		Skipped: make([]Skip, 0),
	}

	for _, d := range derivations {
		if missing := snap.missing(d.Required); len(missing) > 0 {
			rep.Skipped = append(rep.Skipped, Skip{Name: d.Name, Missing: missing})
			continue
		}

		rows, n := d.derive(filtered)
		res := Result{Name: d.Name, Title: d.Title, Status: StatusOK, Rows: rows}
		if n == 0 {
			res.Status = StatusNoData
			res.Rows = nil
		}
		rep.Results = append(rep.Results, res)
	}

	return rep
}

// columnTitle turns "big_chances_missed" into "Big Chances Missed".
func columnTitle(col string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(col, "_", " "))
}

package report

import (
	"cmp"
	"slices"

	"github.com/padraicbc/pldash/models"
)

// TopN bounds every ranking.
const TopN = 10

// RiskColumns are ranked one table each by TopByMetric.
var RiskColumns = []string{
	models.ColRedCards,
	models.ColBigChancesMissed,
	models.ColErrorsLeadingToGoal,
	models.ColOwnGoals,
}

// Point is one marker of a scatter chart.
type Point struct {
	Name     string   `json:"name"`
	Club     *string  `json:"club"`
	Position *string  `json:"position"`
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Size     *float64 `json:"size,omitempty"`
}

// PositionCount is one slice of the position breakdown.
type PositionCount struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// NationalityCount is one bar of the nationality chart.
type NationalityCount struct {
	Nationality string `json:"nationality"`
	PlayerCount int    `json:"player_count"`
}

// PositionAverage is one row of the long-form averages table. Value is nil
// when no row of the group has the metric set.
type PositionAverage struct {
	Position string   `json:"position"`
	Metric   string   `json:"metric"`
	Value    *float64 `json:"value"`
}

// Ranked is one row of a top-N table over a single metric.
type Ranked struct {
	Name   string   `json:"name"`
	Club   *string  `json:"club"`
	Metric string   `json:"metric"`
	Value  *float64 `json:"value"`
}

// Contribution is one row of the goals plus assists ranking.
type Contribution struct {
	Name               string  `json:"name"`
	Club               *string `json:"club"`
	Goals              float64 `json:"goals"`
	Assists            float64 `json:"assists"`
	TotalContributions float64 `json:"total_contributions"`
}

// GoalsPerMatch returns every non-null goals_per_match value in row order.
func GoalsPerMatch(players []models.Player) []float64 {
	out := make([]float64, 0, len(players))
	for i := range players {
		if v := players[i].GoalsPerMatch; v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// PositionBreakdown counts rows per position, largest group first.
func PositionBreakdown(players []models.Player) []PositionCount {
	groups := countBy(players, models.ColPosition)
	out := make([]PositionCount, len(groups))
	for i, g := range groups {
		out[i] = PositionCount{Position: g.key, Count: g.n}
	}
	return out
}

// TopNationalities returns the TopN most common nationalities.
func TopNationalities(players []models.Player) []NationalityCount {
	groups := countBy(players, models.ColNationality)
	if len(groups) > TopN {
		groups = groups[:TopN]
	}
	out := make([]NationalityCount, len(groups))
	for i, g := range groups {
		out[i] = NationalityCount{Nationality: g.key, PlayerCount: g.n}
	}
	return out
}

// ShootingAccuracy plots shooting accuracy against goals, sized by shots on
// target, for rows that have all three.
func ShootingAccuracy(players []models.Player) []Point {
	out := make([]Point, 0)
	for i := range players {
		p := &players[i]
		if p.ShootingAccuracy == nil || p.Goals == nil || p.ShotsOnTarget == nil {
			continue
		}
		out = append(out, Point{
			Name:     p.Name,
			Club:     p.Club,
			Position: p.Position,
			X:        p.ShootingAccuracy,
			Y:        p.Goals,
			Size:     p.ShotsOnTarget,
		})
	}
	return out
}

// TacklesInterceptions plots tackles against interceptions, sized by tackle
// success, for rows that have all three.
func TacklesInterceptions(players []models.Player) []Point {
	out := make([]Point, 0)
	for i := range players {
		p := &players[i]
		if p.Tackles == nil || p.Interceptions == nil || p.TackleSuccess == nil {
			continue
		}
		out = append(out, Point{
			Name:     p.Name,
			Club:     p.Club,
			Position: p.Position,
			X:        p.Tackles,
			Y:        p.Interceptions,
			Size:     p.TackleSuccess,
		})
	}
	return out
}

// GoalkeeperPerformance plots saves against goals conceded for rows with a
// positive value in either.
func GoalkeeperPerformance(players []models.Player) []Point {
	out := make([]Point, 0)
	for i := range players {
		p := &players[i]
		if !positive(p.Saves) && !positive(p.GoalsConceded) {
			continue
		}
		out = append(out, Point{
			Name:     p.Name,
			Club:     p.Club,
			Position: p.Position,
			X:        p.Saves,
			Y:        p.GoalsConceded,
		})
	}
	return out
}

// AveragesByPosition averages goals and assists per position over the rows
// that have each value. Positions are sorted by name; every goals row comes
// before the assists rows.
func AveragesByPosition(players []models.Player) []PositionAverage {
	metrics := [2]string{models.ColGoals, models.ColAssists}
	type acc struct {
		sum [2]float64
		n   [2]int
	}

	groups := map[string]*acc{}
	var keys []string
	for i := range players {
		p := &players[i]
		if p.Position == nil {
			continue
		}
		a, ok := groups[*p.Position]
		if !ok {
			a = &acc{}
			groups[*p.Position] = a
			keys = append(keys, *p.Position)
		}
		for m, v := range [2]*float64{p.Goals, p.Assists} {
			if v != nil {
				a.sum[m] += *v
				a.n[m]++
			}
		}
	}
	slices.Sort(keys)

	out := make([]PositionAverage, 0, len(metrics)*len(keys))
	for m, metric := range metrics {
		for _, k := range keys {
			a := groups[k]
			row := PositionAverage{Position: k, Metric: metric}
			if a.n[m] > 0 {
				mean := a.sum[m] / float64(a.n[m])
				row.Value = &mean
			}
			out = append(out, row)
		}
	}
	return out
}

// TopMidfielders ranks midfielders by assists. Rows without assists rank last.
func TopMidfielders(players []models.Player) []Ranked {
	rows := make([]Ranked, 0)
	for i := range players {
		p := &players[i]
		if p.Position == nil || *p.Position != models.PositionMidfielder {
			continue
		}
		rows = append(rows, Ranked{Name: p.Name, Club: p.Club, Metric: models.ColAssists, Value: p.Assists})
	}
	return rankDesc(rows)
}

// TopByMetric ranks every row by one stat column. Rows without the stat rank
// last.
func TopByMetric(players []models.Player, metric string) []Ranked {
	rows := make([]Ranked, 0, len(players))
	for i := range players {
		p := &players[i]
		rows = append(rows, Ranked{Name: p.Name, Club: p.Club, Metric: metric, Value: p.Stat(metric)})
	}
	return rankDesc(rows)
}

// TopContributions ranks rows holding both goals and assists by their sum.
func TopContributions(players []models.Player) []Contribution {
	rows := make([]Contribution, 0)
	for i := range players {
		p := &players[i]
		total, ok := p.TotalContributions()
		if !ok {
			continue
		}
		rows = append(rows, Contribution{
			Name:               p.Name,
			Club:               p.Club,
			Goals:              *p.Goals,
			Assists:            *p.Assists,
			TotalContributions: total,
		})
	}
	slices.SortStableFunc(rows, func(a, b Contribution) int {
		return cmp.Compare(b.TotalContributions, a.TotalContributions)
	})
	if len(rows) > TopN {
		rows = rows[:TopN]
	}
	return rows
}

type keyCount struct {
	key string
	n   int
}

// countBy counts the non-null values of a text column. Groups are ordered by
// size, largest first; equal sizes keep first-seen order.
func countBy(players []models.Player, col string) []keyCount {
	idx := map[string]int{}
	out := make([]keyCount, 0)
	for i := range players {
		v := players[i].Text(col)
		if v == nil {
			continue
		}
		j, ok := idx[*v]
		if !ok {
			j = len(out)
			idx[*v] = j
			out = append(out, keyCount{key: *v})
		}
		out[j].n++
	}
	slices.SortStableFunc(out, func(a, b keyCount) int { return cmp.Compare(b.n, a.n) })
	return out
}

// rankDesc sorts by value, largest first with nulls last, and keeps TopN.
func rankDesc(rows []Ranked) []Ranked {
	slices.SortStableFunc(rows, func(a, b Ranked) int { return compareDesc(a.Value, b.Value) })
	if len(rows) > TopN {
		rows = rows[:TopN]
	}
	return rows
}

func compareDesc(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*b, *a)
}

func positive(v *float64) bool {
	return v != nil && *v > 0
}

// Package report turns one fetched batch of player rows into the datasets
// behind every dashboard chart.
//
// A session works on a single Snapshot: the rows plus the schema of the table
// they came from. Run filters the snapshot by club and evaluates each entry of
// the derivation table against it. A derivation whose columns are missing from
// the schema is skipped, one whose output is empty reports no data, and a row
// lacking a value a derivation needs is left out of that derivation only.
package report

import (
	"slices"

	"github.com/padraicbc/pldash/models"
)

// Snapshot is the read-only result of one fetch.
type Snapshot struct {
	players []models.Player
	columns []string
	schema  map[string]struct{}
}

// NewSnapshot copies players and the table's column names into a Snapshot.
// A column belongs to the schema even when every row holds null for it.
// Non-finite stats are stored as null.
func NewSnapshot(players []models.Player, columns []string) *Snapshot {
	s := &Snapshot{
		players: slices.Clone(players),
		columns: make([]string, 0, len(columns)),
		schema:  make(map[string]struct{}, len(columns)),
	}
	for i := range s.players {
		s.players[i].ClearNonFinite()
	}
	for _, c := range columns {
		if _, dup := s.schema[c]; dup {
			continue
		}
		s.schema[c] = struct{}{}
		s.columns = append(s.columns, c)
	}
	return s
}

// Players returns a copy of the rows.
func (s *Snapshot) Players() []models.Player {
	return slices.Clone(s.players)
}

// Columns returns the schema in the order it was given.
func (s *Snapshot) Columns() []string {
	return slices.Clone(s.columns)
}

// Len is the number of rows.
func (s *Snapshot) Len() int {
	return len(s.players)
}

// Has reports whether col is part of the schema.
func (s *Snapshot) Has(col string) bool {
	_, ok := s.schema[col]
	return ok
}

func (s *Snapshot) missing(cols []string) []string {
	var out []string
	for _, c := range cols {
		if !s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

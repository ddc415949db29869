package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/padraicbc/pldash/models"
	"github.com/padraicbc/pldash/report"
)

// PlayerStore reads and writes the players table.
type PlayerStore struct {
	db    *bun.DB
	table string
}

// NewPlayerStore binds a store to a table name, optionally schema qualified
// ("public.plp").
func NewPlayerStore(db *bun.DB, table string) *PlayerStore {
	return &PlayerStore{db: db, table: table}
}

// CreateTable creates the players table if it does not exist.
func (s *PlayerStore) CreateTable(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*models.Player)(nil)).
		ModelTableExpr("?", bun.Ident(s.table)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("creating table %s: %w", s.table, err)
	}
	return nil
}

// LoadPlayers fetches at most limit rows together with the table's columns.
// Columns are read under their normalized names, so a "tackle_success_%"
// column fills TackleSuccess.
func (s *PlayerStore) LoadPlayers(ctx context.Context, limit int) (*report.Snapshot, error) {
	raw, err := s.tableColumns(ctx)
	if err != nil {
		return nil, err
	}
	cols := aliasColumns(raw)

	var players []models.Player
	if err := s.selectQuery(&players, limit, cols).Scan(ctx); err != nil {
		return nil, fmt.Errorf("loading players from %s: %w", s.table, err)
	}

	return report.NewSnapshot(players, columnNames(cols)), nil
}

func (s *PlayerStore) tableColumns(ctx context.Context) ([]string, error) {
	schema, table := splitTable(s.table)

	var cols []string
	err := s.db.NewSelect().
		TableExpr("information_schema.columns").
		ColumnExpr("column_name::text").
		Where("table_schema = ?", schema).
		Where("table_name = ?", table).
		OrderExpr("ordinal_position").
		Scan(ctx, &cols)
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", s.table, err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s not found", s.table)
	}
	return cols, nil
}

// column maps a table column onto the name the Player model reads it as.
type column struct {
	raw  string
	name string
}

// aliasColumns normalizes raw column names. When two columns normalize to
// the same name the first one wins.
func aliasColumns(raw []string) []column {
	seen := make(map[string]struct{}, len(raw))
	out := make([]column, 0, len(raw))
	for _, r := range raw {
		name := models.NormalizeColumn(r)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, column{raw: r, name: name})
	}
	return out
}

func columnNames(cols []column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return names
}

// Insert writes players in one statement.
func (s *PlayerStore) Insert(ctx context.Context, players []models.Player) error {
	if len(players) == 0 {
		return nil
	}
	_, err := s.db.NewInsert().
		Model(&players).
		ModelTableExpr("? AS p", bun.Ident(s.table)).
		Exec(ctx)
	return err
}

// Truncate removes every row.
func (s *PlayerStore) Truncate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "TRUNCATE TABLE ?", bun.Ident(s.table))
	return err
}

// ResetIDSequence moves the id sequence past the largest stored id so rows
// imported with explicit ids do not collide with later inserts.
func (s *PlayerStore) ResetIDSequence(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		"SELECT setval(pg_get_serial_sequence(?, 'id'), COALESCE((SELECT MAX(id) FROM ?), 1))",
		s.table, bun.Ident(s.table),
	)
	return err
}

func (s *PlayerStore) selectQuery(dest *[]models.Player, limit int, cols []column) *bun.SelectQuery {
	q := s.db.NewSelect().
		Model(dest).
		ModelTableExpr("? AS p", bun.Ident(s.table))
	if len(cols) == 0 {
		q = q.ColumnExpr("p.*")
	}
	for _, c := range cols {
		q = q.ColumnExpr("p.? AS ?", bun.Ident(c.raw), bun.Ident(c.name))
	}
	return q.Limit(limit)
}

// splitTable splits "schema.table"; a bare name lives in public.
func splitTable(name string) (schema, table string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "public", name
}

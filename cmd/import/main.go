// cmd/import/main.go
// Loads player rows into the PostgreSQL players table, either from a CSV
// export or from a table in a MySQL stats database.
//
// Usage:
//
//	go run ./cmd/import -csv epl_player_stats.csv
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/stats?parseTime=true" \
//	go run ./cmd/import -mysql-table players -truncate
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"

	_ "github.com/go-sql-driver/mysql"

	"github.com/padraicbc/pldash/config"
	bundb "github.com/padraicbc/pldash/db"
	"github.com/padraicbc/pldash/models"
)

// rowSource yields header-normalized rows; Next returns io.EOF when done.
type rowSource interface {
	Columns() []string
	Next() ([]*string, error)
	Close() error
}

type inserter interface {
	Insert(ctx context.Context, players []models.Player) error
}

func main() {
	csvPath := flag.String("csv", "", "CSV file with a header row")
	mysqlTable := flag.String("mysql-table", "", "MySQL table to copy (needs MYSQL_DSN)")
	truncate := flag.Bool("truncate", false, "empty the players table first")
	batchSize := flag.Int("batch", 500, "rows per insert")
	flag.Parse()

	if (*csvPath == "") == (*mysqlTable == "") {
		log.Fatal("exactly one of -csv or -mysql-table is required")
	}
	if *batchSize <= 0 {
		log.Fatal("-batch must be positive")
	}

	ctx := context.Background()
	cfg := config.Load()
	if !cfg.HasPostgres() {
		log.Fatal("import writes to PostgreSQL: set DATABASE_URL or DB_PASS")
	}

	var (
		src rowSource
		err error
	)
	if *csvPath != "" {
		src, err = openCSV(*csvPath)
	} else {
		src, err = openMySQL(ctx, cfg.MySQLDSN, *mysqlTable)
	}
	if err != nil {
		log.Fatalf("open source: %v", err)
	}
	defer src.Close()

	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	store := bundb.NewPlayerStore(pgDB, cfg.PlayersTable)
	if err := store.CreateTable(ctx); err != nil {
		log.Fatalf("create table: %v", err)
	}
	if *truncate {
		if err := store.Truncate(ctx); err != nil {
			log.Fatalf("truncate %s: %v", cfg.PlayersTable, err)
		}
		log.Printf("%s truncated", cfg.PlayersTable)
	}

	inserted, rejected, err := load(ctx, src, store, *batchSize)
	if err != nil {
		log.Fatalf("import after %d rows: %v", inserted, err)
	}

	if err := store.ResetIDSequence(ctx); err != nil {
		log.Printf("reset id sequence: %v", err)
	}
	log.Printf("import complete: %d rows inserted, %d rejected", inserted, rejected)
}

// load parses every row and inserts in batches. Rows ParsePlayer rejects are
// logged and counted, not fatal. Unreadable stats are logged and inserted as
// null.
func load(ctx context.Context, src rowSource, dst inserter, batchSize int) (inserted, rejected int, err error) {
	cols := src.Columns()
	batch := make([]models.Player, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := dst.Insert(ctx, batch); err != nil {
			return err
		}
		inserted += len(batch)
		batch = batch[:0]
		return nil
	}

	for line := 1; ; line++ {
		vals, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return inserted, rejected, fmt.Errorf("row %d: %w", line, err)
		}

		p, bad, err := models.ParsePlayer(cols, vals)
		if err != nil {
			log.Printf("row %d rejected: %v", line, err)
			rejected++
			continue
		}
		for _, ce := range bad {
			log.Printf("row %d (%s): %v, stored as null", line, p.Name, ce)
		}
		batch = append(batch, p)

		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return inserted, rejected, err
			}
		}
	}

	return inserted, rejected, flush()
}

// --- CSV ---

type csvSource struct {
	f    io.Closer
	r    *csv.Reader
	cols []string
}

func openCSV(path string) (*csvSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	src, err := newCSVSource(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	src.f = f
	return src, nil
}

func newCSVSource(r io.Reader) (*csvSource, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = models.NormalizeColumn(h)
	}
	return &csvSource{r: cr, cols: cols}, nil
}

func (s *csvSource) Columns() []string { return s.cols }

func (s *csvSource) Next() ([]*string, error) {
	rec, err := s.r.Read()
	if err != nil {
		return nil, err
	}
	vals := make([]*string, len(rec))
	for i := range rec {
		vals[i] = &rec[i]
	}
	return vals, nil
}

func (s *csvSource) Close() error {
	if s.f == nil {
		return nil
	}
	return s.f.Close()
}

// --- MySQL ---

var tableName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

type mysqlSource struct {
	db   *sql.DB
	rows *sql.Rows
	cols []string
}

func openMySQL(ctx context.Context, dsn, table string) (*mysqlSource, error) {
	if dsn == "" {
		return nil, errors.New("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/stats")
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q: letters, digits and underscores only", table)
	}
	myDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		myDB.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	log.Println("connected to MySQL")

	rows, err := myDB.QueryContext(ctx, "SELECT * FROM `"+table+"`")
	if err != nil {
		myDB.Close()
		return nil, err
	}
	names, err := rows.Columns()
	if err != nil {
		rows.Close()
		myDB.Close()
		return nil, err
	}
	cols := make([]string, len(names))
	for i, n := range names {
		cols[i] = models.NormalizeColumn(n)
	}
	return &mysqlSource{db: myDB, rows: rows, cols: cols}, nil
}

func (s *mysqlSource) Columns() []string { return s.cols }

func (s *mysqlSource) Next() ([]*string, error) {
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}

	cells := make([]sql.NullString, len(s.cols))
	dest := make([]any, len(cells))
	for i := range cells {
		dest[i] = &cells[i]
	}
	if err := s.rows.Scan(dest...); err != nil {
		return nil, err
	}

	vals := make([]*string, len(cells))
	for i, c := range cells {
		vals[i] = nullStr(c)
	}
	return vals, nil
}

func (s *mysqlSource) Close() error {
	s.rows.Close()
	return s.db.Close()
}

func nullStr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

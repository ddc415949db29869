// cmd/report/main.go
// Runs one dashboard session against the configured source and prints the
// report as JSON.
//
// Usage:
//
//	go run ./cmd/report -club Liverpool -pretty
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/padraicbc/pldash/config"
	bundb "github.com/padraicbc/pldash/db"
	"github.com/padraicbc/pldash/handlers"
	"github.com/padraicbc/pldash/report"
	"github.com/padraicbc/pldash/supabase"
)

func main() {
	club := flag.String("club", report.AllClubs, `club to filter on, or "All"`)
	limit := flag.Int("limit", 0, "rows to fetch (default FETCH_LIMIT)")
	pretty := flag.Bool("pretty", false, "indent the JSON output")
	flag.Parse()

	cfg := config.Load()
	if *limit <= 0 {
		*limit = cfg.FetchLimit
	}

	var src handlers.PlayerSource
	if cfg.Source == config.SourceSupabase {
		src = supabase.New(cfg.SupabaseURL, cfg.SupabaseKey, cfg.PlayersTable)
	} else {
		db := bundb.Setup(cfg)
		defer db.Close()
		src = bundb.NewPlayerStore(db, cfg.PlayersTable)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, src, *club, *limit, *pretty, os.Stdout); err != nil {
		log.Fatal("report:", err)
	}
}

func run(ctx context.Context, src handlers.PlayerSource, club string, limit int, pretty bool, w io.Writer) error {
	snap, err := src.LoadPlayers(ctx, limit)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report.Run(snap, club))
}

// Package supabase fetches player rows through a Supabase project's REST
// gateway.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/padraicbc/pldash/models"
	"github.com/padraicbc/pldash/report"
)

// Client reads one table over the REST gateway.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	table      string
}

// New creates a client for the project at baseURL (https://<ref>.supabase.co).
func New(baseURL, apiKey, table string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		table:   table,
	}
}

// LoadPlayers fetches at most limit rows. The schema is the union of the keys
// the rows carry. Rows without a name are dropped and stats that do not parse
// are left null; both are logged.
func (c *Client) LoadPlayers(ctx context.Context, limit int) (*report.Snapshot, error) {
	rows, err := c.fetch(ctx, limit)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	players := make([]models.Player, 0, len(rows))
	for i, row := range rows {
		cols := make([]string, 0, len(row))
		vals := make([]*string, 0, len(row))
		for k, raw := range row {
			col := models.NormalizeColumn(k)
			seen[col] = struct{}{}
			cols = append(cols, col)
			vals = append(vals, cell(raw))
		}

		p, bad, err := models.ParsePlayer(cols, vals)
		if err != nil {
			zap.L().Warn("dropping player row", zap.String("table", c.table), zap.Int("row", i), zap.Error(err))
			continue
		}
		for _, ce := range bad {
			zap.L().Warn("ignoring player stat",
				zap.String("table", c.table),
				zap.Int("row", i),
				zap.String("player", p.Name),
				zap.String("column", ce.Column),
				zap.Error(ce),
			)
		}
		players = append(players, p)
	}

	return report.NewSnapshot(players, orderColumns(seen)), nil
}

func (c *Client) fetch(ctx context.Context, limit int) ([]map[string]json.RawMessage, error) {
	u := fmt.Sprintf("%s/rest/v1/%s?select=*&limit=%d", c.baseURL, url.PathEscape(c.table), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("supabase error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var rows []map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return rows, nil
}

// cell renders a JSON scalar as the text ParsePlayer expects; null is nil.
func cell(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return &s
		}
	}
	s := string(raw)
	return &s
}

// orderColumns puts known columns in table order, then anything else by name.
func orderColumns(seen map[string]struct{}) []string {
	out := make([]string, 0, len(seen))
	for _, c := range models.Columns {
		if _, ok := seen[c]; ok {
			out = append(out, c)
		}
	}
	var extra []string
	for c := range seen {
		if !slices.Contains(models.Columns, c) {
			extra = append(extra, c)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

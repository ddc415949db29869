package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/pldash/models"
	"github.com/padraicbc/pldash/report"
)

// fakeSource implements PlayerSource for testing.
type fakeSource struct {
	snap  *report.Snapshot
	err   error
	calls int
	limit int
}

func (f *fakeSource) LoadPlayers(ctx context.Context, limit int) (*report.Snapshot, error) {
	f.calls++
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func fp(v float64) *float64 { return &v }
func sp(v string) *string { return &v }

func fixture() *report.Snapshot {
	return report.NewSnapshot([]models.Player{
		{Name: "A", Club: sp("Arsenal"), Position: sp("Midfielder"), Assists: fp(5), Goals: fp(1)},
		{Name: "B", Club: sp("Arsenal"), Position: sp("Midfielder"), Assists: fp(9), Goals: fp(3)},
		{Name: "C", Club: sp("Chelsea"), Position: sp("Forward"), Assists: fp(20), Goals: fp(11)},
	}, []string{models.ColName, models.ColClub, models.ColPosition, models.ColGoals, models.ColAssists})
}

func serve(t *testing.T, h echo.HandlerFunc, target string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return rec, h(e.NewContext(req, rec))
}

func TestReport(t *testing.T) {
	src := &fakeSource{snap: fixture()}
	h := New(src, 1000, 5000)

	rec, err := serve(t, h.Report, "/api/report?club=Arsenal")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, src.calls, "one fetch per session")
	assert.Equal(t, 1000, src.limit)

	var body struct {
		Club    string   `json:"club"`
		Loaded  int      `json:"loaded"`
		Showing int      `json:"showing"`
		Clubs   []string `json:"clubs"`
		Results []struct {
			Name   string          `json:"name"`
			Status string          `json:"status"`
			Rows   json.RawMessage `json:"rows"`
		} `json:"results"`
		Skipped []report.Skip `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "Arsenal", body.Club)
	assert.Equal(t, 3, body.Loaded)
	assert.Equal(t, 2, body.Showing)
	assert.Equal(t, []string{"Arsenal", "Chelsea"}, body.Clubs)
	assert.NotEmpty(t, body.Skipped)

	var mids []report.Ranked
	for _, r := range body.Results {
		if r.Name == "top_midfielders" {
			require.NoError(t, json.Unmarshal(r.Rows, &mids))
		}
	}
	require.Len(t, mids, 2)
	assert.Equal(t, "B", mids[0].Name)
	assert.Equal(t, "A", mids[1].Name)
}

func TestReportDefaultsToAllClubs(t *testing.T) {
	h := New(&fakeSource{snap: fixture()}, 1000, 5000)

	rec, err := serve(t, h.Report, "/api/report")
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, report.AllClubs, body["club"])
	assert.EqualValues(t, 3, body["showing"])
}

func TestReportLimit(t *testing.T) {
	t.Run("override", func(t *testing.T) {
		src := &fakeSource{snap: fixture()}
		_, err := serve(t, New(src, 1000, 5000).Report, "/api/report?limit=50")
		require.NoError(t, err)
		assert.Equal(t, 50, src.limit)
	})

	for _, bad := range []string{"0", "-3", "abc", "5001"} {
		t.Run("reject "+bad, func(t *testing.T) {
			src := &fakeSource{snap: fixture()}
			_, err := serve(t, New(src, 1000, 5000).Report, "/api/report?limit="+bad)

			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusBadRequest, he.Code)
			assert.Zero(t, src.calls)
		})
	}
}

func TestReportSourceError(t *testing.T) {
	h := New(&fakeSource{err: errors.New("connection refused")}, 1000, 5000)

	_, err := serve(t, h.Report, "/api/report")

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadGateway, he.Code)
	assert.Contains(t, he.Message, "connection refused")
}

func TestPlayers(t *testing.T) {
	h := New(&fakeSource{snap: fixture()}, 1000, 5000)

	rec, err := serve(t, h.Players, "/api/players?club=Chelsea")
	require.NoError(t, err)

	var body playersData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Loaded)
	assert.Equal(t, 1, body.Showing)
	require.Len(t, body.Players, 1)
	assert.Equal(t, "C", body.Players[0].Name)
	assert.Equal(t, []string{"name", "club", "position", "goals", "assists"}, body.Columns)
}

func TestHealth(t *testing.T) {
	src := &fakeSource{err: errors.New("down")}
	rec, err := serve(t, New(src, 1, 1).Health, "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Zero(t, src.calls)
}

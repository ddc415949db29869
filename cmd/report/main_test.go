package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/pldash/models"
	"github.com/padraicbc/pldash/report"
)

type staticSource struct {
	snap *report.Snapshot
	err  error
}

func (s staticSource) LoadPlayers(ctx context.Context, limit int) (*report.Snapshot, error) {
	return s.snap, s.err
}

func TestRun(t *testing.T) {
	club := "Brentford"
	snap := report.NewSnapshot([]models.Player{{Name: "Toney", Club: &club}}, []string{"name", "club"})

	var buf bytes.Buffer
	require.NoError(t, run(context.Background(), staticSource{snap: snap}, "Brentford", 10, true, &buf))

	var rep report.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep))
	assert.Equal(t, "Brentford", rep.Club)
	assert.Equal(t, 1, rep.Showing)
	assert.Contains(t, buf.String(), "\n  \"club\"")
}

func TestRunSourceError(t *testing.T) {
	err := run(context.Background(), staticSource{err: errors.New("offline")}, "All", 10, false, &bytes.Buffer{})
	assert.EqualError(t, err, "offline")
}

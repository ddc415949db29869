package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/pldash/models"
)

type fakeInserter struct {
	batches [][]models.Player
	err     error
}

func (f *fakeInserter) Insert(ctx context.Context, players []models.Player) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, append([]models.Player(nil), players...))
	return nil
}

const sheet = `Name,Club,Position,Nationality,Goals,Assists,Shooting accuracy %,tackle_success_%
Mohamed Salah,Liverpool,Forward,Egypt,23,13,46%,
Virgil van Dijk,Liverpool,Defender,Netherlands,1,2,,79%
,Liverpool,Defender,England,0,0,,
Harry Kane,Tottenham-Hotspur,Forward,England,17,lots,44%,
Kevin De Bruyne,Manchester-City,Midfielder,Belgium,13,16,41%,55%
`

func TestCSVSourceColumns(t *testing.T) {
	src, err := newCSVSource(strings.NewReader(sheet))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"name", "club", "position", "nationality", "goals", "assists",
		"shooting_accuracy_percent", "tackle_success_percent",
	}, src.Columns())
}

func TestLoadBatches(t *testing.T) {
	src, err := newCSVSource(strings.NewReader(sheet))
	require.NoError(t, err)

	dst := &fakeInserter{}
	inserted, rejected, err := load(context.Background(), src, dst, 2)
	require.NoError(t, err)

	assert.Equal(t, 4, inserted)
	assert.Equal(t, 1, rejected, "blank name")
	require.Len(t, dst.batches, 2)
	assert.Len(t, dst.batches[0], 2)
	assert.Len(t, dst.batches[1], 2)

	kane := dst.batches[1][0]
	assert.Equal(t, "Harry Kane", kane.Name)
	assert.Nil(t, kane.Assists, "unreadable stat is stored as null")
	require.NotNil(t, kane.Goals)
	assert.Equal(t, 17.0, *kane.Goals)

	vvd := dst.batches[0][1]
	assert.Equal(t, "Virgil van Dijk", vvd.Name)
	assert.Nil(t, vvd.ShootingAccuracy)
	require.NotNil(t, vvd.TackleSuccess)
	assert.Equal(t, 79.0, *vvd.TackleSuccess)
}

func TestLoadInsertError(t *testing.T) {
	src, err := newCSVSource(strings.NewReader(sheet))
	require.NoError(t, err)

	_, _, err = load(context.Background(), src, &fakeInserter{err: errors.New("boom")}, 1)
	assert.EqualError(t, err, "boom")
}

func TestCSVSourceEmpty(t *testing.T) {
	_, err := newCSVSource(strings.NewReader(""))
	assert.Error(t, err)
}

func TestOpenMySQLRejectsTableName(t *testing.T) {
	for _, name := range []string{"plp`; DROP TABLE plp; --", "stats.plp", ""} {
		t.Run(name, func(t *testing.T) {
			_, err := openMySQL(context.Background(), "u:p@tcp(127.0.0.1:1)/stats", name)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid table name")
		})
	}
}

package handlers

import (
	"context"

	"github.com/padraicbc/pldash/report"
)

// PlayerSource fetches one bounded batch of player rows with their schema.
type PlayerSource interface {
	LoadPlayers(ctx context.Context, limit int) (*report.Snapshot, error)
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	src      PlayerSource
	limit    int
	maxLimit int
}

// New creates a Handler reading from src. limit is the default batch size and
// maxLimit the largest a request may ask for.
func New(src PlayerSource, limit, maxLimit int) *Handler {
	return &Handler{src: src, limit: limit, maxLimit: maxLimit}
}

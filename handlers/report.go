package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/pldash/models"
	"github.com/padraicbc/pldash/report"
)

type playersData struct {
	Club    string          `json:"club"`
	Loaded  int             `json:"loaded"`
	Showing int             `json:"showing"`
	Columns []string        `json:"columns"`
	Players []models.Player `json:"players"`
}

// Report runs one dashboard session: a fresh fetch, the club filter and every
// chart derivation.
func (h *Handler) Report(c echo.Context) error {
	snap, club, err := h.load(c)
	if err != nil {
		return err
	}

	rep := report.Run(snap, club)
	for _, sk := range rep.Skipped {
		zap.L().Debug("derivation skipped",
			zap.String("derivation", sk.Name),
			zap.Strings("missing", sk.Missing),
		)
	}

	return c.JSON(http.StatusOK, rep)
}

// Players returns the raw rows, filtered by club.
func (h *Handler) Players(c echo.Context) error {
	snap, club, err := h.load(c)
	if err != nil {
		return err
	}

	filtered := report.Filter(snap.Players(), club)
	return c.JSON(http.StatusOK, playersData{
		Club:    club,
		Loaded:  snap.Len(),
		Showing: len(filtered),
		Columns: snap.Columns(),
		Players: filtered,
	})
}

// Health reports that the server is up. It does not touch the store.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// load reads the club and limit params and fetches a snapshot.
func (h *Handler) load(c echo.Context) (*report.Snapshot, string, error) {
	limit := h.limit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > h.maxLimit {
			return nil, "", echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("limit must be an integer between 1 and %d", h.maxLimit))
		}
		limit = n
	}

	club := strings.TrimSpace(c.QueryParam("club"))
	if club == "" {
		club = report.AllClubs
	}

	snap, err := h.src.LoadPlayers(c.Request().Context(), limit)
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	zap.L().Debug("players loaded", zap.Int("rows", snap.Len()), zap.Int("limit", limit), zap.String("club", club))

	return snap, club, nil
}

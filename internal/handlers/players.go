package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/reborn-osrs/reborn-ranks/internal/models"
	"github.com/reborn-osrs/reborn-ranks/internal/players"
	"github.com/reborn-osrs/reborn-ranks/internal/tracker"
)

// Trackers is the part of tracker.Service the handlers call.
type Trackers interface {
	CollectionLog(ctx context.Context, rsn string) (*tracker.CollectionLog, error)
	UpdatePlayer(ctx context.Context, rsn string) (*tracker.WOMPlayer, error)
	Roster(ctx context.Context) (*tracker.Group, []tracker.RosterEntry, error)
	Stats(ctx context.Context, rsn string) tracker.Stats
}

type PlayerHandler struct {
	players  *players.Store
	ranks    *RankService
	trackers Trackers
	logger   *zap.Logger
}

func NewPlayerHandler(store *players.Store, ranks *RankService, trackers Trackers, logger *zap.Logger) *PlayerHandler {
	return &PlayerHandler{
		players:  store,
		ranks:    ranks,
		trackers: trackers,
		logger:   logger.Named("players"),
	}
}

type PlayerIDInput struct {
	ID string `path:"id"`
}

type PlayerOutput struct {
	Body *models.Player
}

type PlayerListOutput struct {
	Body []models.Player
}

type CreatePlayerInput struct {
	Body struct {
		RSN       string `json:"rsn,omitempty" doc:"RuneScape name"`
		DiscordID string `json:"discordId,omitempty" doc:"Discord user id of the member"`
		JoinDate  string `json:"joinDate,omitempty" doc:"Clan join date, YYYY-MM-DD"`
		Scaling   int    `json:"scaling,omitempty" doc:"UI scaling percentage" default:"100"`
	}
}

// loadPlayer maps store errors to HTTP errors.
func (h *PlayerHandler) loadPlayer(ctx context.Context, id string) (*models.Player, error) {
	p, err := h.players.Get(ctx, id)
	if errors.Is(err, players.ErrNotFound) {
		return nil, huma.Error404NotFound("Player not found")
	}
	if err != nil {
		h.logger.Error("Failed to load player", zap.String("player_id", id), zap.Error(err))
		return nil, huma.Error500InternalServerError("Database error")
	}
	return p, nil
}

func (h *PlayerHandler) HandleList(ctx context.Context, input *struct{}) (*PlayerListOutput, error) {
	list, err := h.players.List(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	return &PlayerListOutput{Body: list}, nil
}

func (h *PlayerHandler) HandleCreate(ctx context.Context, input *CreatePlayerInput) (*PlayerOutput, error) {
	rsn := strings.TrimSpace(input.Body.RSN)
	discordID := strings.TrimSpace(input.Body.DiscordID)
	joinDate := strings.TrimSpace(input.Body.JoinDate)

	if rsn == "" {
		return nil, huma.Error400BadRequest("rsn is required")
	}
	if discordID == "" {
		return nil, huma.Error400BadRequest("discordId is required")
	}
	if joinDate != "" {
		if _, err := time.Parse(time.DateOnly, joinDate); err != nil {
			return nil, huma.Error400BadRequest("joinDate must be YYYY-MM-DD")
		}
	}

	p := &models.Player{RSN: rsn, DiscordID: discordID, JoinDate: joinDate, Scaling: input.Body.Scaling}
	if err := h.players.Create(ctx, p); err != nil {
		h.logger.Error("Failed to create player", zap.Error(err))
		return nil, huma.Error500InternalServerError("Failed to save player")
	}
	h.logger.Info("Player created", zap.String("player_id", p.ID), zap.String("rsn", p.RSN))
	return &PlayerOutput{Body: p}, nil
}

func (h *PlayerHandler) HandleGet(ctx context.Context, input *PlayerIDInput) (*PlayerOutput, error) {
	p, err := h.loadPlayer(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &PlayerOutput{Body: p}, nil
}

func (h *PlayerHandler) HandleDelete(ctx context.Context, input *PlayerIDInput) (*struct{}, error) {
	err := h.players.Delete(ctx, input.ID)
	if errors.Is(err, players.ErrNotFound) {
		return nil, huma.Error404NotFound("Player not found")
	}
	if err != nil {
		h.logger.Error("Failed to delete player", zap.String("player_id", input.ID), zap.Error(err))
		return nil, huma.Error500InternalServerError("Failed to delete player")
	}
	return nil, nil
}

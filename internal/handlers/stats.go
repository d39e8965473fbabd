package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/reborn-osrs/reborn-ranks/internal/tracker"
)

type StatsOutput struct {
	Body tracker.Stats
}

func (h *PlayerHandler) HandleStats(ctx context.Context, input *PlayerIDInput) (*StatsOutput, error) {
	p, err := h.loadPlayer(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &StatsOutput{Body: h.trackers.Stats(ctx, p.RSN)}, nil
}

type RosterOutput struct {
	Body struct {
		GroupID int                   `json:"groupId"`
		Name    string                `json:"name"`
		Members []tracker.RosterEntry `json:"members"`
	}
}

func (h *PlayerHandler) HandleRoster(ctx context.Context, input *struct{}) (*RosterOutput, error) {
	g, members, err := h.trackers.Roster(ctx)
	if err != nil {
		h.logger.Warn("Roster fetch failed", zap.Error(err))
		return nil, huma.Error502BadGateway("Wise Old Man request failed")
	}
	resp := &RosterOutput{}
	resp.Body.GroupID = g.ID
	resp.Body.Name = g.Name
	resp.Body.Members = members
	if resp.Body.Members == nil {
		resp.Body.Members = []tracker.RosterEntry{}
	}
	return resp, nil
}

type WOMUpdateOutput struct {
	Body struct {
		Username    string `json:"username"`
		DisplayName string `json:"displayName"`
		TotalLevel  *int   `json:"totalLevel"`
	}
}

func (h *PlayerHandler) HandleWOMUpdate(ctx context.Context, input *PlayerIDInput) (*WOMUpdateOutput, error) {
	p, err := h.loadPlayer(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	wp, err := h.trackers.UpdatePlayer(ctx, p.RSN)
	if errors.Is(err, tracker.ErrPlayerNotFound) {
		return nil, huma.Error404NotFound("Player not found on Wise Old Man")
	}
	if err != nil {
		h.logger.Warn("WOM update failed", zap.String("rsn", p.RSN), zap.Error(err))
		return nil, huma.Error502BadGateway("Wise Old Man request failed")
	}

	resp := &WOMUpdateOutput{}
	resp.Body.Username = wp.Username
	resp.Body.DisplayName = wp.Name()
	if total, ok := wp.TotalLevel(); ok {
		resp.Body.TotalLevel = &total
	}
	return resp, nil
}

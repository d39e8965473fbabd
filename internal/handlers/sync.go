package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/reborn-osrs/reborn-ranks/internal/ranks"
	"github.com/reborn-osrs/reborn-ranks/internal/reconcile"
	"github.com/reborn-osrs/reborn-ranks/internal/tracker"
)

const suggestionsPerName = 3

type SyncInput struct {
	ID    string `path:"id"`
	Force bool   `query:"force" doc:"Re-apply even if this tracker update was already applied"`
}

type UnmatchedName struct {
	Name        string                 `json:"name"`
	Suggestions []reconcile.Suggestion `json:"suggestions"`
}

type SyncCounts struct {
	Extracted int `json:"extracted"`
	Matched   int `json:"matched"`
	Applied   int `json:"applied"`
	Unmatched int `json:"unmatched"`
}

type SyncOutput struct {
	Body struct {
		Skipped    bool             `json:"skipped"`
		Stamp      string           `json:"stamp"`
		Matched    []string         `json:"matchedIds"`
		Applied    []string         `json:"appliedIds"`
		Unmatched  []UnmatchedName  `json:"unmatched"`
		Counts     SyncCounts       `json:"counts"`
		Evaluation ranks.Evaluation `json:"evaluation"`
	}
}

// HandleSync pulls the tracker collection log and checks every item it
// proves. Manual unchecks are preserved.
func (h *PlayerHandler) HandleSync(ctx context.Context, input *SyncInput) (*SyncOutput, error) {
	p, err := h.loadPlayer(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	log := h.logger.With(zap.String("player_id", p.ID), zap.String("rsn", p.RSN))

	clog, err := h.trackers.CollectionLog(ctx, p.RSN)
	if errors.Is(err, tracker.ErrPlayerNotFound) {
		return nil, huma.Error404NotFound("Player not found on TempleOSRS")
	}
	if err != nil {
		log.Warn("Collection log fetch failed", zap.Error(err))
		return nil, huma.Error502BadGateway("TempleOSRS request failed")
	}

	state, err := h.players.Checklist(ctx, p.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}

	resp := &SyncOutput{}
	resp.Body.Stamp = clog.Stamp
	resp.Body.Matched = []string{}
	resp.Body.Applied = []string{}
	resp.Body.Unmatched = []UnmatchedName{}
	resp.Body.Counts.Extracted = len(clog.Items)

	if !input.Force && p.TempleAppliedStamp != "" && p.TempleAppliedStamp == clog.Stamp {
		log.Info("Sync skipped, stamp already applied", zap.String("stamp", clog.Stamp))
		resp.Body.Skipped = true
		resp.Body.Evaluation = h.ranks.Evaluator.Evaluate(state)
		return resp, nil
	}

	result := h.ranks.Engine.ReconcileCounts(clog.Items)
	next, applied := reconcile.Merge(state, result.IDs)

	if err := h.players.ApplySync(ctx, p.ID, applied, clog.Stamp); err != nil {
		log.Error("Failed to store sync", zap.Error(err))
		return nil, huma.Error500InternalServerError("Failed to save checklist")
	}

	idx := h.ranks.Engine.Index()
	for _, name := range result.Unmatched {
		s := idx.Suggest(name, suggestionsPerName)
		if s == nil {
			s = []reconcile.Suggestion{}
		}
		resp.Body.Unmatched = append(resp.Body.Unmatched, UnmatchedName{Name: name, Suggestions: s})
	}
	resp.Body.Matched = append(resp.Body.Matched, result.IDs...)
	resp.Body.Applied = append(resp.Body.Applied, applied...)
	resp.Body.Counts.Matched = len(result.IDs)
	resp.Body.Counts.Applied = len(applied)
	resp.Body.Counts.Unmatched = len(result.Unmatched)
	resp.Body.Evaluation = h.ranks.Evaluator.Evaluate(next)

	log.Info("Sync applied",
		zap.String("stamp", clog.Stamp),
		zap.Int("matched", len(result.IDs)),
		zap.Int("applied", len(applied)),
		zap.Int("unmatched", len(result.Unmatched)))
	return resp, nil
}

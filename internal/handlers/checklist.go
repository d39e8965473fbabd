package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/reborn-osrs/reborn-ranks/internal/catalog"
	"github.com/reborn-osrs/reborn-ranks/internal/models"
	"github.com/reborn-osrs/reborn-ranks/internal/ranks"
)

type ChecklistView struct {
	PlayerID            string                  `json:"playerId"`
	Items               catalog.Checklist       `json:"items"`
	Entries             []models.ChecklistEntry `json:"entries"`
	Evaluation          ranks.Evaluation        `json:"evaluation"`
	NextThreshold       *int                    `json:"nextThreshold"`
	Progress            float64                 `json:"progress"`
	BlockedByCapability bool                    `json:"blockedByCapability"`
}

type ChecklistOutput struct {
	Body ChecklistView
}

func evaluationView(ev ranks.Evaluation) (next *int, progress float64, blocked bool) {
	if n, ok := ev.NextThreshold(); ok {
		next = &n
	}
	return next, ev.Progress(), ev.BlockedByCapability()
}

func (h *PlayerHandler) checklistView(ctx context.Context, playerID string) (*ChecklistOutput, error) {
	entries, err := h.players.Entries(ctx, playerID)
	if err != nil {
		h.logger.Error("Failed to load checklist", zap.String("player_id", playerID), zap.Error(err))
		return nil, huma.Error500InternalServerError("Database error")
	}
	items := make(catalog.Checklist, len(entries))
	for _, e := range entries {
		items[e.ItemID] = e.Checked
	}

	resp := &ChecklistOutput{}
	resp.Body.PlayerID = playerID
	resp.Body.Items = items
	resp.Body.Entries = entries
	resp.Body.Evaluation = h.ranks.Evaluator.Evaluate(items)
	resp.Body.NextThreshold, resp.Body.Progress, resp.Body.BlockedByCapability = evaluationView(resp.Body.Evaluation)
	return resp, nil
}

func (h *PlayerHandler) HandleChecklist(ctx context.Context, input *PlayerIDInput) (*ChecklistOutput, error) {
	if _, err := h.loadPlayer(ctx, input.ID); err != nil {
		return nil, err
	}
	return h.checklistView(ctx, input.ID)
}

type SetItemInput struct {
	ID     string `path:"id"`
	ItemID string `path:"itemId"`
	Body   struct {
		Checked bool `json:"checked" doc:"Whether the player owns the item"`
	}
}

// HandleSetItem stores a manual toggle. An explicit false is kept and
// later tracker syncs will not re-check the item.
func (h *PlayerHandler) HandleSetItem(ctx context.Context, input *SetItemInput) (*ChecklistOutput, error) {
	if _, err := h.loadPlayer(ctx, input.ID); err != nil {
		return nil, err
	}
	if !h.ranks.Catalog.Has(input.ItemID) {
		return nil, huma.Error404NotFound("Unknown item id")
	}
	if err := h.players.SetItem(ctx, input.ID, input.ItemID, input.Body.Checked); err != nil {
		h.logger.Error("Failed to store checklist item", zap.String("player_id", input.ID), zap.Error(err))
		return nil, huma.Error500InternalServerError("Failed to save checklist")
	}
	return h.checklistView(ctx, input.ID)
}

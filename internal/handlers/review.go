package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/reborn-osrs/reborn-ranks/internal/catalog"
	"github.com/reborn-osrs/reborn-ranks/internal/config"
	"github.com/reborn-osrs/reborn-ranks/internal/models"
	"github.com/reborn-osrs/reborn-ranks/internal/players"
	"github.com/reborn-osrs/reborn-ranks/internal/promotion"
	"github.com/reborn-osrs/reborn-ranks/internal/review"
)

// Authorizer resolves the logged-in user from a Cookie header.
type Authorizer interface {
	Authorize(ctx context.Context, cookieHeader string) (*models.User, error)
}

type ReviewHandler struct {
	reviews  *review.Service
	players  *players.Store
	ranks    *RankService
	trackers Trackers
	auth     Authorizer
	cfg      *config.Config
	logger   *zap.Logger
}

func NewReviewHandler(reviews *review.Service, store *players.Store, ranks *RankService, trackers Trackers, auth Authorizer, cfg *config.Config, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews:  reviews,
		players:  store,
		ranks:    ranks,
		trackers: trackers,
		auth:     auth,
		cfg:      cfg,
		logger:   logger.Named("review-requests"),
	}
}

type CreateReviewInput struct {
	Cookie string `header:"Cookie"`
	Body   struct {
		PlayerID           string `json:"playerId,omitempty" doc:"Stored player whose checklist backs the request"`
		RSN                string `json:"rsn,omitempty"`
		RequestedRank      string `json:"requestedRank,omitempty"`
		RequestedRole      string `json:"requestedRole,omitempty" doc:"Discord role label being requested"`
		RequesterDiscordID string `json:"requesterDiscordId,omitempty" doc:"Used when there is no login session"`
		Notes              string `json:"notes,omitempty"`

		TotalLevel             *int `json:"totalLevel,omitempty"`
		RaidsTotal             *int `json:"raidsTotal,omitempty"`
		BossKillsTotal         *int `json:"bossKillsTotal,omitempty"`
		PetsUnique             *int `json:"petsUnique,omitempty"`
		CollectionLogCompleted *int `json:"collectionLogCompleted,omitempty"`
	}
}

type ReviewOutput struct {
	Body struct {
		Request *models.ReviewRequest `json:"request"`
		Lines   []string              `json:"lines,omitempty"`
		Checks  []promotion.Check     `json:"checks,omitempty"`
	}
}

func override(fetched, supplied *int) *int {
	if supplied != nil {
		return supplied
	}
	return fetched
}

func (h *ReviewHandler) requester(ctx context.Context, input *CreateReviewInput) string {
	if h.auth != nil && input.Cookie != "" {
		if user, err := h.auth.Authorize(ctx, input.Cookie); err == nil && user.DiscordID != "" {
			return user.DiscordID
		}
	}
	return strings.TrimSpace(input.Body.RequesterDiscordID)
}

func (h *ReviewHandler) HandleCreate(ctx context.Context, input *CreateReviewInput) (*ReviewOutput, error) {
	requesterID := h.requester(ctx, input)
	if requesterID == "" {
		return nil, huma.Error400BadRequest("Missing requester Discord id. Log in or provide requesterDiscordId.")
	}
	role := strings.TrimSpace(input.Body.RequestedRole)
	if role == "" {
		return nil, huma.Error400BadRequest("requestedRole is required")
	}
	if !h.cfg.ReviewReady() {
		return nil, huma.Error500InternalServerError("Discord bot token or staff channel is not configured")
	}

	rr := &models.ReviewRequest{
		PlayerID:      strings.TrimSpace(input.Body.PlayerID),
		RSN:           strings.TrimSpace(input.Body.RSN),
		RequestedRank: strings.TrimSpace(input.Body.RequestedRank),
		RequestedRole: role,
		RequesterID:   requesterID,
		Notes:         strings.TrimSpace(input.Body.Notes),
	}
	if rr.RequestedRank == "" {
		rr.RequestedRank = role
	}

	if rr.PlayerID != "" {
		p, err := h.players.Get(ctx, rr.PlayerID)
		if errors.Is(err, players.ErrNotFound) {
			return nil, huma.Error404NotFound("Player not found")
		}
		if err != nil {
			return nil, huma.Error500InternalServerError("Database error")
		}
		if rr.RSN == "" {
			rr.RSN = p.RSN
		}
		state, err := h.players.Checklist(ctx, p.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("Database error")
		}
		h.applyEvaluation(rr, state)
	}
	if rr.RSN == "" {
		return nil, huma.Error400BadRequest("rsn or playerId is required")
	}

	stats := h.trackers.Stats(ctx, rr.RSN)
	rr.TotalLevel = override(stats.TotalLevel, input.Body.TotalLevel)
	rr.RaidsTotal = override(stats.RaidsTotal, input.Body.RaidsTotal)
	rr.BossKillsTotal = override(stats.BossKillsTotal, input.Body.BossKillsTotal)
	rr.PetsUnique = override(stats.PetsUnique, input.Body.PetsUnique)
	rr.CollectionLogCompleted = override(stats.CollectionLogCompleted, input.Body.CollectionLogCompleted)

	stored, summary, err := h.reviews.Submit(ctx, rr, summaryInput(rr))
	if errors.Is(err, review.ErrPostFailed) {
		h.logger.Error("Staff message not posted", zap.String("request_id", stored.ID), zap.Error(err))
		return nil, huma.Error502BadGateway("Failed to post the review to Discord")
	}
	if err != nil {
		h.logger.Error("Failed to submit review request", zap.Error(err))
		return nil, huma.Error500InternalServerError("Failed to save review request")
	}

	if h.cfg.CleanupPlayerAfterSubmit && rr.PlayerID != "" {
		if err := h.players.Delete(ctx, rr.PlayerID); err != nil && !errors.Is(err, players.ErrNotFound) {
			h.logger.Warn("Failed to clean up player after submit", zap.String("player_id", rr.PlayerID), zap.Error(err))
		}
	}

	resp := &ReviewOutput{}
	resp.Body.Request = stored
	resp.Body.Lines = summary.Lines
	resp.Body.Checks = summary.Checks
	return resp, nil
}

func (h *ReviewHandler) applyEvaluation(rr *models.ReviewRequest, state catalog.Checklist) {
	ev := h.ranks.Evaluator.Evaluate(state)
	earned := ev.PointsEarned
	rr.ItemPointsEarned = &earned
	rr.ItemQualifiedLabel = ev.Qualified.Label
	if ev.Next != nil {
		rr.ItemNextLabel = ev.Next.Label
	}
	if n, ok := ev.NextThreshold(); ok {
		rr.ItemNextThreshold = &n
	}
}

func summaryInput(rr *models.ReviewRequest) promotion.Input {
	return promotion.Input{
		RSN:                    rr.RSN,
		RequestedRank:          rr.RequestedRank,
		RequestedRole:          rr.RequestedRole,
		RequesterID:            rr.RequesterID,
		Notes:                  rr.Notes,
		ItemQualifiedLabel:     rr.ItemQualifiedLabel,
		ItemNextLabel:          rr.ItemNextLabel,
		ItemPointsEarned:       rr.ItemPointsEarned,
		ItemNextThreshold:      rr.ItemNextThreshold,
		TotalLevel:             rr.TotalLevel,
		RaidsTotal:             rr.RaidsTotal,
		BossKillsTotal:         rr.BossKillsTotal,
		PetsUnique:             rr.PetsUnique,
		CollectionLogCompleted: rr.CollectionLogCompleted,
	}
}

type ListReviewsInput struct {
	Status string `query:"status" doc:"Filter by status: pending, approved or denied"`
}

type ListReviewsOutput struct {
	Body []models.ReviewRequest
}

func (h *ReviewHandler) HandleList(ctx context.Context, input *ListReviewsInput) (*ListReviewsOutput, error) {
	list, err := h.reviews.Store().List(ctx, input.Status)
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	if list == nil {
		list = []models.ReviewRequest{}
	}
	return &ListReviewsOutput{Body: list}, nil
}

type ReviewIDInput struct {
	ID string `path:"id"`
}

func (h *ReviewHandler) HandleGet(ctx context.Context, input *ReviewIDInput) (*ReviewOutput, error) {
	rr, err := h.reviews.Store().Get(ctx, input.ID)
	if errors.Is(err, review.ErrNotFound) {
		return nil, huma.Error404NotFound("Review request not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	resp := &ReviewOutput{}
	resp.Body.Request = rr
	return resp, nil
}

package handlers

import (
	"context"

	"github.com/reborn-osrs/reborn-ranks/internal/catalog"
	"github.com/reborn-osrs/reborn-ranks/internal/promotion"
	"github.com/reborn-osrs/reborn-ranks/internal/ranks"
	"github.com/reborn-osrs/reborn-ranks/internal/reconcile"
)

// RankService bundles the static rank tables and engines shared by the
// handlers. All of it is read-only after construction.
type RankService struct {
	Catalog   *catalog.Catalog
	Evaluator *ranks.Evaluator
	Skilling  ranks.SkillingTable
	Policy    promotion.Policy
	Engine    *reconcile.Engine
}

func NewRankService(cat *catalog.Catalog, policy promotion.Policy) (*RankService, error) {
	ev, err := ranks.NewDefaultEvaluator(cat)
	if err != nil {
		return nil, err
	}
	return &RankService{
		Catalog:   cat,
		Evaluator: ev,
		Skilling:  ranks.DefaultSkillingRanks(),
		Policy:    policy,
		Engine:    reconcile.NewDefaultEngine(cat),
	}, nil
}

type CatalogHandler struct {
	ranks *RankService
}

func NewCatalogHandler(ranks *RankService) *CatalogHandler {
	return &CatalogHandler{ranks: ranks}
}

type CatalogOutput struct {
	Body struct {
		Groups       []catalog.Group       `json:"groups"`
		Requirements []catalog.Requirement `json:"requirements"`
		PointsMax    int                   `json:"pointsMax"`
	}
}

func (h *CatalogHandler) HandleCatalog(ctx context.Context, input *struct{}) (*CatalogOutput, error) {
	resp := &CatalogOutput{}
	resp.Body.Groups = h.ranks.Catalog.Groups()
	resp.Body.Requirements = h.ranks.Catalog.Requirements()
	resp.Body.PointsMax = h.ranks.Catalog.PointsMax()
	return resp, nil
}

type RanksOutput struct {
	Body struct {
		PvM              []ranks.Rank        `json:"pvm"`
		CapabilityItemID string              `json:"capabilityItemId"`
		Skilling         ranks.SkillingTable `json:"skilling"`
		Policy           promotion.Policy    `json:"policy"`
	}
}

func (h *CatalogHandler) HandleRanks(ctx context.Context, input *struct{}) (*RanksOutput, error) {
	resp := &RanksOutput{}
	resp.Body.PvM = h.ranks.Evaluator.Ranks()
	resp.Body.CapabilityItemID = h.ranks.Evaluator.CapabilityItemID()
	resp.Body.Skilling = h.ranks.Skilling
	resp.Body.Policy = h.ranks.Policy
	return resp, nil
}

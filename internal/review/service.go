package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/reborn-osrs/reborn-ranks/internal/models"
	"github.com/reborn-osrs/reborn-ranks/internal/notifier"
	"github.com/reborn-osrs/reborn-ranks/internal/promotion"
)

// ErrPostFailed wraps a failure to deliver the staff message. The request
// stays stored as pending.
var ErrPostFailed = errors.New("review: failed to post staff message")

// RoleResolver maps a requested role label to a Discord role id.
type RoleResolver func(label string) (string, bool)

type Service struct {
	store    *Store
	notifier notifier.Notifier
	policy   promotion.Policy
	roles    RoleResolver
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(store *Store, n notifier.Notifier, policy promotion.Policy, roles RoleResolver, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		notifier: n,
		policy:   policy,
		roles:    roles,
		logger:   logger.Named("review"),
		now:      time.Now,
	}
}

func (s *Service) Store() *Store { return s.store }

func (s *Service) Policy() promotion.Policy { return s.policy }

// Submit stores the request, posts the staff message with decision buttons
// and records where it was posted.
func (s *Service) Submit(ctx context.Context, rr *models.ReviewRequest, in promotion.Input) (*models.ReviewRequest, promotion.Summary, error) {
	if err := s.store.Create(ctx, rr); err != nil {
		return nil, promotion.Summary{}, fmt.Errorf("store review request: %w", err)
	}

	summary := s.policy.Build(in)
	msg, err := s.notifier.PostReview(ctx, rr.ID, summary.Message(rr.ID))
	if err != nil {
		return rr, summary, fmt.Errorf("%w: %v", ErrPostFailed, err)
	}

	if err := s.store.SetMessage(ctx, rr.ID, msg); err != nil {
		s.logger.Warn("Failed to store staff message ids", zap.String("request_id", rr.ID), zap.Error(err))
	} else {
		rr.DiscordChannelID, rr.DiscordMessageID = msg.ChannelID, msg.MessageID
	}

	s.logger.Info("Review request submitted",
		zap.String("request_id", rr.ID),
		zap.String("rsn", rr.RSN),
		zap.String("role", rr.RequestedRole))
	return rr, summary, nil
}

type DecisionInput struct {
	CustomID    string
	ClickedBy   string
	Interaction notifier.Interaction
}

type Outcome string

const (
	OutcomeApproved        Outcome = "approved"
	OutcomeDenied          Outcome = "denied"
	OutcomeAlreadyDecided  Outcome = "already_decided"
	OutcomeNotFound        Outcome = "not_found"
	OutcomeNoRoleMapping   Outcome = "no_role_mapping"
	OutcomeFailed          Outcome = "failed"
	OutcomeUnknownCustomID Outcome = "unknown_custom_id"
)

type DecisionResult struct {
	Outcome Outcome
	Reply   string
	Request *models.ReviewRequest
}

// Decide applies a staff button click and replies to the clicker. It is
// safe to call more than once for the same click.
func (s *Service) Decide(ctx context.Context, in DecisionInput) DecisionResult {
	res := s.decide(ctx, in)
	if res.Reply != "" {
		if err := s.notifier.Followup(ctx, in.Interaction, res.Reply); err != nil {
			s.logger.Warn("Failed to send decision follow-up", zap.Error(err))
		}
	}
	return res
}

func (s *Service) decide(ctx context.Context, in DecisionInput) DecisionResult {
	d, id, err := promotion.ParseCustomID(in.CustomID)
	if err != nil {
		s.logger.Info("Ignoring unknown custom id", zap.String("custom_id", in.CustomID))
		return DecisionResult{Outcome: OutcomeUnknownCustomID}
	}
	log := s.logger.With(zap.String("request_id", id), zap.String("decision", string(d)), zap.String("clicked_by", in.ClickedBy))

	rr, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		log.Info("Request not found")
		return DecisionResult{Outcome: OutcomeNotFound, Reply: "Request not found."}
	}
	if err != nil {
		log.Error("Failed to load request", zap.Error(err))
		return DecisionResult{Outcome: OutcomeFailed, Reply: "Failed: " + err.Error()}
	}
	if rr.Status != string(promotion.StatusPending) {
		return alreadyDecided(rr)
	}

	roleID, ok := s.roles(rr.RequestedRole)
	if !ok {
		log.Warn("Missing role mapping", zap.String("role", rr.RequestedRole))
		return DecisionResult{
			Outcome: OutcomeNoRoleMapping,
			Reply:   fmt.Sprintf("No role mapping found for %q. Add it to DISCORD_ROLE_MAP_JSON.", rr.RequestedRole),
			Request: rr,
		}
	}

	// Granting a role the member already holds is a no-op, so the grant runs
	// before the status write and a failed grant leaves the request pending.
	if d == promotion.Approve {
		if err := s.notifier.GrantRole(ctx, rr.RequesterID, roleID); err != nil {
			log.Error("Failed to grant role", zap.String("role_id", roleID), zap.Error(err))
			return DecisionResult{Outcome: OutcomeFailed, Reply: "Failed: " + err.Error(), Request: rr}
		}
	}

	rr, err = s.store.Decide(ctx, id, d, in.ClickedBy, s.now())
	if errors.Is(err, promotion.ErrAlreadyDecided) {
		return alreadyDecided(rr)
	}
	if err != nil {
		log.Error("Failed to record decision", zap.Error(err))
		return DecisionResult{Outcome: OutcomeFailed, Reply: "Failed: " + err.Error()}
	}

	if rr.DiscordChannelID != "" && rr.DiscordMessageID != "" {
		msg := notifier.StaffMessage{ChannelID: rr.DiscordChannelID, MessageID: rr.DiscordMessageID}
		if err := s.notifier.DisableReviewButtons(ctx, msg); err != nil {
			log.Warn("Failed to disable review buttons", zap.Error(err))
		}
	}

	log.Info("Review request decided")
	if d == promotion.Approve {
		return DecisionResult{
			Outcome: OutcomeApproved,
			Reply:   fmt.Sprintf("✅ Approved. Added **%s** to <@%s>.", rr.RequestedRole, rr.RequesterID),
			Request: rr,
		}
	}
	return DecisionResult{Outcome: OutcomeDenied, Reply: "❌ Denied.", Request: rr}
}

func alreadyDecided(rr *models.ReviewRequest) DecisionResult {
	return DecisionResult{Outcome: OutcomeAlreadyDecided, Reply: fmt.Sprintf("Already %s.", rr.Status), Request: rr}
}

package handlers

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"io"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/reborn-osrs/reborn-ranks/internal/notifier"
	"github.com/reborn-osrs/reborn-ranks/internal/review"
	"github.com/reborn-osrs/reborn-ranks/internal/tasks"
)

const maxInteractionBody = 1 << 20

// Decider applies staff decisions. *review.Service implements it.
type Decider interface {
	Decide(ctx context.Context, in review.DecisionInput) review.DecisionResult
}

// TaskQueue runs work after the HTTP response is sent.
type TaskQueue interface {
	Submit(name string, fn tasks.Task) error
}

// InteractionHandler serves the Discord interactions endpoint. It is a plain
// http.Handler because the signature covers the raw body.
type InteractionHandler struct {
	publicKey ed25519.PublicKey
	decider   Decider
	queue     TaskQueue
	logger    *zap.Logger
}

// NewInteractionHandler takes a nil key when none is configured; every
// request is then rejected.
func NewInteractionHandler(publicKey ed25519.PublicKey, decider Decider, queue TaskQueue, logger *zap.Logger) *InteractionHandler {
	return &InteractionHandler{
		publicKey: publicKey,
		decider:   decider,
		queue:     queue,
		logger:    logger.Named("interactions"),
	}
}

func writeInteractionResponse(w http.ResponseWriter, resp *discordgo.InteractionResponse) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func ephemeral(content string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}
}

func clickedBy(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func (h *InteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if len(h.publicKey) != ed25519.PublicKeySize {
		http.Error(w, "Interaction public key is not configured", http.StatusUnauthorized)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxInteractionBody)
	if !discordgo.VerifyInteraction(r, h.publicKey) {
		http.Error(w, "Invalid request signature", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	var i discordgo.Interaction
	if err := json.Unmarshal(body, &i); err != nil {
		http.Error(w, "Invalid interaction payload", http.StatusBadRequest)
		return
	}

	switch i.Type {
	case discordgo.InteractionPing:
		writeInteractionResponse(w, &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong})

	case discordgo.InteractionMessageComponent:
		in := review.DecisionInput{
			CustomID:    i.MessageComponentData().CustomID,
			ClickedBy:   clickedBy(&i),
			Interaction: notifier.Interaction{AppID: i.AppID, Token: i.Token},
		}
		err := h.queue.Submit("review-decision", func(ctx context.Context) {
			res := h.decider.Decide(ctx, in)
			h.logger.Info("Decision processed",
				zap.String("custom_id", in.CustomID),
				zap.String("outcome", string(res.Outcome)))
		})
		if err != nil {
			h.logger.Error("Failed to queue decision", zap.String("custom_id", in.CustomID), zap.Error(err))
			writeInteractionResponse(w, ephemeral("Busy right now, please click again in a moment."))
			return
		}
		writeInteractionResponse(w, &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate})

	default:
		writeInteractionResponse(w, ephemeral("Unsupported interaction type."))
	}
}

package notifier

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/reborn-osrs/reborn-ranks/internal/promotion"
)

// StaffMessage locates a posted review message so it can be edited later.
type StaffMessage struct {
	ChannelID string
	MessageID string
}

// Interaction identifies a component click for follow-up replies.
type Interaction struct {
	AppID string
	Token string
}

type Notifier interface {
	PostReview(ctx context.Context, requestID, content string) (StaffMessage, error)
	DisableReviewButtons(ctx context.Context, msg StaffMessage) error
	GrantRole(ctx context.Context, userID, roleID string) error
	Followup(ctx context.Context, in Interaction, content string) error
}

// session is the part of *discordgo.Session the notifier uses.
type session interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   session
	channelID string
	guildID   string
	logger    *zap.Logger
}

func NewDiscordNotifier(s *discordgo.Session, channelID, guildID string, logger *zap.Logger) *DiscordNotifier {
	n := &DiscordNotifier{
		channelID: channelID,
		guildID:   guildID,
		logger:    logger.Named("discord"),
	}
	// keep a nil *Session as a nil interface so the checks below work
	if s != nil {
		n.session = s
	}
	return n
}

func reviewButtons(requestID string, disabled bool) []discordgo.MessageComponent {
	approveID, denyID := promotion.CustomID(promotion.Approve, requestID), promotion.CustomID(promotion.Deny, requestID)
	if disabled {
		approveID, denyID = "disabled", "disabled2"
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Approve", Style: discordgo.SuccessButton, CustomID: approveID, Disabled: disabled},
				discordgo.Button{Label: "Deny", Style: discordgo.DangerButton, CustomID: denyID, Disabled: disabled},
			},
		},
	}
}

func (n *DiscordNotifier) ready() error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	return nil
}

func (n *DiscordNotifier) PostReview(ctx context.Context, requestID, content string) (StaffMessage, error) {
	if err := n.ready(); err != nil {
		return StaffMessage{}, err
	}
	if n.channelID == "" {
		return StaffMessage{}, fmt.Errorf("discord staff channel ID is empty")
	}

	msg, err := n.session.ChannelMessageSendComplex(n.channelID, &discordgo.MessageSend{
		Content:    content,
		Components: reviewButtons(requestID, false),
	}, discordgo.WithContext(ctx))
	if err != nil {
		n.logger.Error("Failed to post review message", zap.String("request_id", requestID), zap.Error(err))
		return StaffMessage{}, err
	}
	return StaffMessage{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

func (n *DiscordNotifier) DisableReviewButtons(ctx context.Context, msg StaffMessage) error {
	if err := n.ready(); err != nil {
		return err
	}
	components := reviewButtons("", true)
	edit := discordgo.NewMessageEdit(msg.ChannelID, msg.MessageID)
	edit.Components = &components
	_, err := n.session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx))
	return err
}

func (n *DiscordNotifier) GrantRole(ctx context.Context, userID, roleID string) error {
	if err := n.ready(); err != nil {
		return err
	}
	if n.guildID == "" {
		return fmt.Errorf("discord guild ID is empty")
	}
	return n.session.GuildMemberRoleAdd(n.guildID, userID, roleID, discordgo.WithContext(ctx))
}

func (n *DiscordNotifier) Followup(ctx context.Context, in Interaction, content string) error {
	if err := n.ready(); err != nil {
		return err
	}
	if in.AppID == "" || in.Token == "" {
		return nil
	}
	_, err := n.session.FollowupMessageCreate(&discordgo.Interaction{AppID: in.AppID, Token: in.Token}, false, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}, discordgo.WithContext(ctx))
	return err
}

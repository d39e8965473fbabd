package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/reborn-osrs/reborn-ranks/internal/config"
	"github.com/reborn-osrs/reborn-ranks/internal/models"
)

const (
	DiscordAuthorizeEndpoint = "https://discord.com/api/oauth2/authorize"
	DiscordTokenEndpoint     = "https://discord.com/api/oauth2/token"
	DiscordUserAPI           = "https://discord.com/api/users/@me"
	DiscordUserGuildsAPI     = "https://discord.com/api/users/@me/guilds"

	CookieName    = "auth_token"
	TokenDuration = 24 * time.Hour
)

var ErrUnauthenticated = errors.New("auth: no valid session")

type AuthHandler struct {
	oauthConfig *oauth2.Config
	db          *gorm.DB
	cfg         *config.Config
	logger      *zap.Logger
	userAPI     string
	guildsAPI   string
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURL,
			Scopes:       []string{"identify", "email", "guilds"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  DiscordAuthorizeEndpoint,
				TokenURL: DiscordTokenEndpoint,
			},
		},
		db:        db,
		cfg:       cfg,
		logger:    logger.Named("auth"),
		userAPI:   DiscordUserAPI,
		guildsAPI: DiscordUserGuildsAPI,
	}
}

type LoginOutput struct {
	Status   int
	Location string `header:"Location"`
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *struct{}) (*LoginOutput, error) {
	return &LoginOutput{
		Status:   http.StatusTemporaryRedirect,
		Location: h.oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOnline),
	}, nil
}

type CallbackInput struct {
	Code string `query:"code"`
}

type CallbackOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
	}
}

type discordUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

func (h *AuthHandler) HandleCallback(ctx context.Context, input *CallbackInput) (*CallbackOutput, error) {
	if input.Code == "" {
		return nil, huma.Error400BadRequest("Code not found")
	}

	token, err := h.oauthConfig.Exchange(ctx, input.Code)
	if err != nil {
		h.logger.Warn("Failed to exchange oauth code", zap.Error(err))
		return nil, huma.Error500InternalServerError("Failed to exchange token")
	}

	return h.login(ctx, h.oauthConfig.Client(ctx, token))
}

// login loads the Discord identity behind client, stores the user and
// issues the session cookie.
func (h *AuthHandler) login(ctx context.Context, client *http.Client) (*CallbackOutput, error) {
	inGuild := false
	if h.cfg.DiscordGuildID != "" {
		var guilds []struct {
			ID string `json:"id"`
		}
		if err := getJSON(ctx, client, h.guildsAPI, &guilds); err != nil {
			return nil, huma.Error500InternalServerError("Failed to get user guilds")
		}
		for _, g := range guilds {
			if g.ID == h.cfg.DiscordGuildID {
				inGuild = true
				break
			}
		}
		if !inGuild && h.cfg.DiscordRequireGuild {
			return nil, huma.Error403Forbidden("Access denied: You are not a member of the clan Discord.")
		}
	}

	var du discordUser
	if err := getJSON(ctx, client, h.userAPI, &du); err != nil {
		return nil, huma.Error500InternalServerError("Failed to get user info")
	}
	if du.ID == "" {
		return nil, huma.Error500InternalServerError("Discord returned no user id")
	}

	var user models.User
	if err := h.db.WithContext(ctx).FirstOrInit(&user, models.User{DiscordID: du.ID}).Error; err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	user.Username = du.Username
	user.Email = du.Email
	user.Avatar = du.Avatar
	user.InGuild = inGuild

	if err := h.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to save user")
	}

	jwtToken, err := h.GenerateToken(user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	h.logger.Info("User logged in", zap.String("discord_id", user.DiscordID), zap.Bool("in_guild", inGuild))

	resp := &CallbackOutput{SetCookie: sessionCookie(jwtToken)}
	resp.Body.Message = fmt.Sprintf("Welcome %s! You are logged in.", user.Username)
	return resp, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func sessionCookie(token string) http.Cookie {
	return http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

func (h *AuthHandler) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthenticated
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

func userIDFromClaims(claims jwt.MapClaims) (uint, bool) {
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// Authorize resolves the logged-in user from a raw Cookie header.
func (h *AuthHandler) Authorize(ctx context.Context, cookieHeader string) (*models.User, error) {
	userID, _, err := h.session(cookieHeader)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return &user, nil
}

type AuthInput struct {
	Cookie string `header:"Cookie"`
}

type MeOutput struct {
	Body struct {
		ID        uint   `json:"id"`
		DiscordID string `json:"discordId"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		Avatar    string `json:"avatar"`
		InGuild   bool   `json:"inGuild"`
	}
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *AuthInput) (*MeOutput, error) {
	user, err := h.Authorize(ctx, input.Cookie)
	if errors.Is(err, ErrUnauthenticated) {
		return nil, huma.Error401Unauthorized("Not logged in")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}

	resp := &MeOutput{}
	resp.Body.ID = user.ID
	resp.Body.DiscordID = user.DiscordID
	resp.Body.Username = user.Username
	resp.Body.Email = user.Email
	resp.Body.Avatar = user.Avatar
	resp.Body.InGuild = user.InGuild
	return resp, nil
}

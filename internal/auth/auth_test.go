package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/reborn-osrs/reborn-ranks/internal/config"
	"github.com/reborn-osrs/reborn-ranks/internal/database"
	"github.com/reborn-osrs/reborn-ranks/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	return db
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

func TestHandleMe(t *testing.T) {
	db := testDB(t)

	user := models.User{
		DiscordID: "123456",
		Username:  "testuser",
		Email:     "test@example.com",
		Avatar:    "avatar_url",
	}
	require.NoError(t, db.Create(&user).Error)

	cfg := &config.Config{JWTSecret: "test-secret"}
	handler := NewAuthHandler(cfg, db, nil)

	t.Run("Authenticated", func(t *testing.T) {
		token, err := handler.GenerateToken(user.ID)
		require.NoError(t, err)

		resp, err := handler.HandleMe(context.Background(), &AuthInput{Cookie: "theme=dark; auth_token=" + token})
		require.NoError(t, err)
		assert.Equal(t, user.Username, resp.Body.Username)
		assert.Equal(t, user.Email, resp.Body.Email)
		assert.Equal(t, "123456", resp.Body.DiscordID)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		_, err := handler.HandleMe(context.Background(), &AuthInput{})
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

		_, err = handler.HandleMe(context.Background(), &AuthInput{Cookie: "auth_token=garbage"})
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("DeletedUser", func(t *testing.T) {
		token, err := handler.GenerateToken(9999)
		require.NoError(t, err)
		_, err = handler.HandleMe(context.Background(), &AuthInput{Cookie: "auth_token=" + token})
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})
}

func discordAPI(t *testing.T, guilds ...string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/@me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "777", "username": "zezima", "email": "z@example.com"})
	})
	mux.HandleFunc("GET /users/@me/guilds", func(w http.ResponseWriter, r *http.Request) {
		out := []map[string]string{}
		for _, g := range guilds {
			out = append(out, map[string]string{"id": g})
		}
		json.NewEncoder(w).Encode(out)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin(t *testing.T) {
	newHandler := func(t *testing.T, cfg *config.Config, srv *httptest.Server) (*AuthHandler, *gorm.DB) {
		db := testDB(t)
		h := NewAuthHandler(cfg, db, nil)
		h.userAPI = srv.URL + "/users/@me"
		h.guildsAPI = srv.URL + "/users/@me/guilds"
		return h, db
	}

	t.Run("UpsertsUserAndSetsCookie", func(t *testing.T) {
		srv := discordAPI(t, "clan")
		h, db := newHandler(t, &config.Config{JWTSecret: "s", DiscordGuildID: "clan"}, srv)

		resp, err := h.login(context.Background(), srv.Client())
		require.NoError(t, err)
		assert.Equal(t, CookieName, resp.SetCookie.Name)
		assert.True(t, resp.SetCookie.HttpOnly)
		assert.Contains(t, resp.Body.Message, "zezima")

		_, err = h.login(context.Background(), srv.Client())
		require.NoError(t, err)

		var users []models.User
		require.NoError(t, db.Find(&users).Error)
		require.Len(t, users, 1)
		assert.Equal(t, "777", users[0].DiscordID)
		assert.True(t, users[0].InGuild)

		me, err := h.HandleMe(context.Background(), &AuthInput{Cookie: CookieName + "=" + resp.SetCookie.Value})
		require.NoError(t, err)
		assert.Equal(t, "zezima", me.Body.Username)
	})

	t.Run("GuildRequired", func(t *testing.T) {
		srv := discordAPI(t, "elsewhere")
		h, _ := newHandler(t, &config.Config{JWTSecret: "s", DiscordGuildID: "clan", DiscordRequireGuild: true}, srv)

		_, err := h.login(context.Background(), srv.Client())
		assert.Equal(t, http.StatusForbidden, statusOf(t, err))
	})

	t.Run("GuildOptional", func(t *testing.T) {
		srv := discordAPI(t, "elsewhere")
		h, db := newHandler(t, &config.Config{JWTSecret: "s", DiscordGuildID: "clan"}, srv)

		_, err := h.login(context.Background(), srv.Client())
		require.NoError(t, err)

		var user models.User
		require.NoError(t, db.First(&user, "discord_id = ?", "777").Error)
		assert.False(t, user.InGuild)
	})
}

func TestHandleLogin(t *testing.T) {
	h := NewAuthHandler(&config.Config{DiscordClientID: "cid", DiscordRedirectURL: "http://localhost/cb"}, nil, nil)

	out, err := h.HandleLogin(context.Background(), &struct{}{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTemporaryRedirect, out.Status)
	assert.Contains(t, out.Location, DiscordAuthorizeEndpoint)
	assert.Contains(t, out.Location, "client_id=cid")
}

func TestHandleCallback_MissingCode(t *testing.T) {
	h := NewAuthHandler(&config.Config{}, nil, nil)
	_, err := h.HandleCallback(context.Background(), &CallbackInput{})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// UserID returns the session user stored by RequireSession.
func UserID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok
}

// session validates the cookie header and returns a renewed cookie once
// less than half of the token lifetime remains.
func (h *AuthHandler) session(cookieHeader string) (uint, *http.Cookie, error) {
	cookies, err := http.ParseCookie(cookieHeader)
	if err != nil {
		return 0, nil, ErrUnauthenticated
	}
	var tokenString string
	for _, c := range cookies {
		if c.Name == CookieName {
			tokenString = c.Value
		}
	}
	if tokenString == "" {
		return 0, nil, ErrUnauthenticated
	}

	claims, err := h.parseToken(tokenString)
	if err != nil {
		return 0, nil, err
	}
	userID, ok := userIDFromClaims(claims)
	if !ok {
		return 0, nil, ErrUnauthenticated
	}

	if exp, ok := claims["exp"].(float64); ok {
		remaining := time.Until(time.Unix(int64(exp), 0))
		if remaining < TokenDuration/2 {
			if newToken, err := h.GenerateToken(userID); err == nil {
				c := sessionCookie(newToken)
				return userID, &c, nil
			}
		}
	}
	return userID, nil, nil
}

// RequireSession is an operation middleware that rejects requests without
// a valid session and slides the session forward.
func (h *AuthHandler) RequireSession(api huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		userID, renewed, err := h.session(ctx.Header("Cookie"))
		if err != nil {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: Invalid or missing session")
			return
		}
		if renewed != nil {
			ctx.AppendHeader("Set-Cookie", renewed.String())
		}
		next(huma.WithValue(ctx, UserIDKey, userID))
	}
}

package rest

import (
	"context"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const userIDKey = contextKey("userID")

// TokenValidator проверяет bearer-токен и возвращает ID пользователя.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticator определяет пользователя по Authorization: Bearer (если настроен валидатор)
// или по заголовку X-User-ID, который проставляет API Gateway.
type Authenticator struct {
	tokens TokenValidator
}

// NewAuthenticator: tokens может быть nil, тогда учитывается только X-User-ID.
func NewAuthenticator(tokens TokenValidator) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// identify возвращает nil без ошибки, если учетных данных в запросе нет.
func (a *Authenticator) identify(r *http.Request) (*uuid.UUID, string) {
	if a.tokens != nil {
		if header := r.Header.Get("Authorization"); header != "" {
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				return nil, "Invalid Authorization header format"
			}
			userID, err := a.tokens.ValidateToken(r.Context(), strings.TrimSpace(token))
			if err != nil {
				return nil, "Invalid or expired token"
			}
			return &userID, ""
		}
	}

	userIDStr := r.Header.Get("X-User-ID")
	if userIDStr == "" {
		return nil, ""
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, "Invalid X-User-ID header format"
	}
	return &userID, ""
}

func (a *Authenticator) serve(required bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, problem := a.identify(r)
		if problem != "" {
			contextkeys.LoggerFromContext(r.Context()).Warn("Authentication failed", port.Fields{"reason": problem})
			WriteJSONError(w, http.StatusUnauthorized, problem)
			return
		}
		if userID == nil {
			if required {
				WriteJSONError(w, http.StatusUnauthorized, "X-User-ID header is missing")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, *userID)
		logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"user_id": *userID})
		ctx = contextkeys.ContextWithLogger(ctx, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Required - middleware для приватных роутов: без пользователя 401.
func (a *Authenticator) Required(next http.Handler) http.Handler {
	return a.serve(true, next)
}

// Optional пропускает анонимные запросы. Некорректные учетные данные все равно дают 401.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return a.serve(false, next)
}

// UserIDFromContext возвращает пользователя, определенного middleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}

func optionalUserID(ctx context.Context) *uuid.UUID {
	if userID, ok := UserIDFromContext(ctx); ok {
		return &userID
	}
	return nil
}

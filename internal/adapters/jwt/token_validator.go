package token_adapter

import (
	"context"
	"errors"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenInvalid - токен подделан, просрочен или не содержит user_id.
var ErrTokenInvalid = errors.New("token is invalid")

// TokenValidator проверяет HS256-токены, выпущенные сервисом аутентификации.
type TokenValidator struct {
	signingKey []byte
	issuer     string
}

// NewTokenValidator: пустой issuer означает, что поле iss не проверяется.
func NewTokenValidator(signingKey, issuer string) (*TokenValidator, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("JWT signing key cannot be empty")
	}
	return &TokenValidator{signingKey: []byte(signingKey), issuer: issuer}, nil
}

type jwtCustomClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	Role   string    `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ValidateToken возвращает ID пользователя из claim user_id.
func (v *TokenValidator) ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	validatorLogger := logger.WithFields(port.Fields{
		"component": "TokenValidator",
		"method":    "ValidateToken",
	})

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.signingKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			validatorLogger.Warn("Token has expired", nil)
		} else {
			validatorLogger.Warn("Invalid token format or signature", port.Fields{"error": err.Error()})
		}
		return uuid.Nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		validatorLogger.Warn("Token has no usable user_id claim", nil)
		return uuid.Nil, ErrTokenInvalid
	}

	validatorLogger.Debug("Token validated", port.Fields{"user_id": claims.UserID})
	return claims.UserID, nil
}

// GenerateToken выпускает токен с тем же набором claims. Нужен для локальной отладки и тестов.
func (v *TokenValidator) GenerateToken(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &jwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    v.issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

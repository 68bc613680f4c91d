package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kaganyildiz/academix/internal/app/models"
)

// JWT errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey   string
	TokenExp    time.Duration
	TokenIssuer string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
	}
}

// Claims defines JWT token content
type Claims struct {
	UserID       int64       `json:"userId"`
	Username     string      `json:"username"`
	Role         models.Role `json:"role"`
	AssociatedID *int64      `json:"associatedId,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed bearer token for the account. The token is
// a pure function of the account, the secret and the clock; nothing is
// persisted server-side.
func (s *JWTService) GenerateToken(user *models.User) (token string, expiresIn int64, err error) {
	now := time.Now()
	claims := &Claims{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		AssociatedID: user.AssociatedID(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, int64(s.config.TokenExp.Seconds()), nil
}

// ValidateToken checks signature and expiry and returns the embedded claims.
// Expiry is reported as ErrExpiredToken; every other verification failure
// (bad signature, truncation, wrong algorithm) collapses to ErrInvalidToken.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID <= 0 || claims.Username == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

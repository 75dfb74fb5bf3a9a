package jwt

import (
	"context"
	"errors"
	"fmt"
	"roomly/config"
	"roomly/infras/otel"
	"roomly/shared/constant"
	"roomly/shared/timezone"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")

	errMissingHeader = errors.New("authorization header is required")
	errBearerPrefix  = errors.New("authorization header must start with 'Bearer '")
)

const bearerScheme = "Bearer"

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims identify the caller. The token id is the registered jti claim.
type Claims struct {
	UserID int64     `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role,omitempty"`
	Type   TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(ctx context.Context, userID int64, email, role string) (*TokenPair, error)
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
}

// key is the signing secret and lifetime of one token type.
type key struct {
	secret []byte
	ttl    time.Duration
}

// Service signs HS256 tokens with a separate secret per token type.
type Service struct {
	issuer string
	keys   map[TokenType]key
	otel   otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) JWT {
	return &Service{
		issuer: cfg.App.Name,
		keys: map[TokenType]key{
			AccessToken:  {secret: []byte(cfg.JWT.AccessSecret), ttl: time.Duration(cfg.JWT.AccessExpireMin) * time.Minute},
			RefreshToken: {secret: []byte(cfg.JWT.RefreshSecret), ttl: time.Duration(cfg.JWT.RefreshExpireMin) * time.Minute},
		},
		otel: otl,
	}
}

func (s *Service) keyFor(tokenType TokenType) (key, error) {
	k, ok := s.keys[tokenType]
	if !ok {
		return key{}, fmt.Errorf("unknown token type: %s", tokenType)
	}

	return k, nil
}

func (s *Service) GenerateTokenPair(ctx context.Context, userID int64, email, role string) (pair *TokenPair, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".jwt.GenerateTokenPair")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()
	pair = &TokenPair{TokenType: bearerScheme}

	if pair.AccessToken, err = s.sign(userID, email, role, AccessToken, now); err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if pair.RefreshToken, err = s.sign(userID, email, role, RefreshToken, now); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	pair.ExpiresIn = int64(s.keys[AccessToken].ttl / time.Second)

	return pair, nil
}

func (s *Service) sign(userID int64, email, role string, tokenType TokenType, issuedAt time.Time) (string, error) {
	k, err := s.keyFor(tokenType)
	if err != nil {
		return "", err
	}

	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(k.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(k.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken verifies the signature, lifetime and issuer of tokenString
// and that it was issued as tokenType.
func (s *Service) ValidateToken(tokenString string, tokenType TokenType) (*Claims, error) {
	k, err := s.keyFor(tokenType)
	if err != nil {
		return nil, err
	}

	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return k.secret, nil
	}, options...)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil, !token.Valid:
		return nil, ErrInvalidToken
	case claims.Type != tokenType:
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// RefreshTokens issues a fresh pair for the holder of a valid refresh token.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateToken(refreshToken, RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	return s.GenerateTokenPair(ctx, claims.UserID, claims.Email, claims.Role)
}

// ExtractTokenFromHeader returns the token of a "Bearer <token>" header.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errMissingHeader
	}

	token, found := strings.CutPrefix(authHeader, bearerScheme+" ")
	if !found || strings.TrimSpace(token) == "" {
		return "", errBearerPrefix
	}

	return strings.TrimSpace(token), nil
}

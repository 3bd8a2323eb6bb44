package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"

	"todo-api/internal/domain"
	"todo-api/internal/repository"
)

// TokenService emite y valida tokens de portador firmados.
//
// La firma solo prueba que el token salió de este proceso; la autoridad sobre
// revocación es el TokenRegistry, porque una firma no puede expresar "sesión
// cerrada". Por eso Resolve exige ambas cosas.
type TokenService struct {
	secret   []byte
	issuer   string
	users    repository.UserRepository
	registry TokenRegistry
}

// TokenClaims es el payload firmado: identidad más scope.
type TokenClaims struct {
	UserID string `json:"uid"`
	Scope  string `json:"scope"`
	jwt.RegisteredClaims
}

var ErrTokenInvalid = errors.New("token invalid")

func NewTokenService(secret string, users repository.UserRepository, registry TokenRegistry) *TokenService {
	if registry == nil {
		registry = NewMemoryTokenRegistry()
	}
	return &TokenService{
		secret:   []byte(secret),
		issuer:   "todo-api",
		users:    users,
		registry: registry,
	}
}

// Issue firma un token {uid, scope} y lo agrega a la lista de tokens activos
// del usuario. Los tokens no llevan exp: la revocación va por registro.
func (s *TokenService) Issue(ctx context.Context, userID, scope string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims := TokenClaims{
		UserID: userID,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   s.issuer,
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	if err := s.registry.Append(ctx, userID, scope, signed); err != nil {
		return "", err
	}
	return signed, nil
}

// Verify valida firma y forma del token, sin consultar el registro.
func (s *TokenService) Verify(tokenString string) (TokenClaims, error) {
	if len(s.secret) == 0 {
		return TokenClaims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return TokenClaims{}, ErrTokenInvalid
	}
	var claims TokenClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return TokenClaims{}, ErrTokenInvalid
	}
	if !s.isValidClaims(claims) {
		return TokenClaims{}, ErrTokenInvalid
	}
	return claims, nil
}

// Resolve mapea un token a su usuario. Tokens revocados, ajenos o basura son
// indistinguibles: todos devuelven ErrTokenInvalid.
func (s *TokenService) Resolve(ctx context.Context, tokenString string) (domain.User, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return domain.User{}, err
	}
	active, err := s.registry.Contains(ctx, claims.UserID, domain.ScopeAuth, tokenString)
	if err != nil {
		return domain.User{}, err
	}
	if !active {
		return domain.User{}, ErrTokenInvalid
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrTokenInvalid
		}
		return domain.User{}, err
	}
	return user, nil
}

// Revoke quita un token de la lista activa del usuario (logout).
func (s *TokenService) Revoke(ctx context.Context, userID, tokenString string) error {
	return s.registry.Remove(ctx, userID, tokenString)
}

func (s *TokenService) isValidClaims(claims TokenClaims) bool {
	if strings.TrimSpace(claims.UserID) == "" {
		return false
	}
	if claims.Subject != claims.UserID {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}

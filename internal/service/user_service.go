package service

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"todo-api/internal/domain"
	"todo-api/internal/repository"
)

// UserService coordina registro y login de usuarios.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
	tokens *TokenService
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, tokens *TokenService) *UserService {
	return &UserService{
		logger: logger,
		users:  users,
		tokens: tokens,
	}
}

const minPasswordLength = 6

// uniqueViolation es el código de Postgres para violación de UNIQUE.
const uniqueViolation = "23505"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ErrAuthFailed cubre tanto email desconocido como password incorrecto, para
// no filtrar cuál de los dos falló.
var ErrAuthFailed = errors.New("invalid credentials")

// ValidationError enumera violaciones por campo.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Register valida, persiste el usuario y emite su primer token de auth. El
// guardado precede estrictamente a la emisión: el token necesita el id.
func (s *UserService) Register(ctx context.Context, emailAddr, password string) (domain.User, string, error) {
	emailAddr = normalizeEmail(emailAddr)

	fields := map[string]string{}
	switch {
	case emailAddr == "":
		fields["email"] = "is required"
	case !emailPattern.MatchString(emailAddr):
		fields["email"] = "is not a valid email"
	}
	switch {
	case password == "":
		fields["password"] = "is required"
	case len(password) < minPasswordLength:
		fields["password"] = "must be at least 6 characters"
	}
	if len(fields) > 0 {
		return domain.User{}, "", &ValidationError{Fields: fields}
	}

	if _, err := s.users.GetByEmail(ctx, emailAddr); err == nil {
		return domain.User{}, "", &ValidationError{Fields: map[string]string{"email": "is already in use"}}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, "", err
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        emailAddr,
		PasswordHash: string(hashBytes),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Respaldo contra la carrera entre el chequeo previo y el INSERT: el
		// índice UNIQUE de la tabla tiene la última palabra.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if s.logger != nil {
				s.logger.Warn("email taken on insert", zap.String("email", emailAddr))
			}
			return domain.User{}, "", &ValidationError{Fields: map[string]string{"email": "is already in use"}}
		}
		return domain.User{}, "", err
	}

	token, err := s.tokens.Issue(ctx, user.ID, domain.ScopeAuth)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Login autentica y emite un token nuevo. No invalida tokens previos: se
// permiten sesiones concurrentes.
func (s *UserService) Login(ctx context.Context, emailAddr, password string) (domain.User, string, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return domain.User{}, "", ErrAuthFailed
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, "", ErrAuthFailed
		}
		return domain.User{}, "", err
	}
	if user.PasswordHash == "" {
		return domain.User{}, "", ErrAuthFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", ErrAuthFailed
	}

	token, err := s.tokens.Issue(ctx, user.ID, domain.ScopeAuth)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

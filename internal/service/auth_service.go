package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "pausepad/internal/errors"
	"pausepad/internal/model"
	"pausepad/internal/repository"
)

const tokenIssuer = "pausepad"

// Credentials are the email and password a client signs up or logs in with.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func (c Credentials) normalized() Credentials {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	return c
}

type AuthService struct {
	users  *repository.UserRepository
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
	parser *jwt.Parser
}

func NewAuthService(users *repository.UserRepository, secret string, ttl time.Duration, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
		),
	}
}

type AuthResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Register creates the account together with its default timer settings.
func (s *AuthService) Register(ctx context.Context, creds Credentials) (*AuthResult, *apperrors.APIError) {
	creds = creds.normalized()
	if apiErr := checkCredentials(creds); apiErr != nil {
		return nil, apiErr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to secure password")
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        creds.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, &user, model.DefaultTimerConfig()); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("email_exists", "email already registered")
		}
		s.logger.Error("create user", zap.Error(err))
		return nil, apperrors.Internal("failed to create user")
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID))

	return s.authenticated(user)
}

func (s *AuthService) Login(ctx context.Context, creds Credentials) (*AuthResult, *apperrors.APIError) {
	creds = creds.normalized()
	if creds.Email == "" || creds.Password == "" {
		return nil, apperrors.BadRequest("invalid_credentials", "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, creds.Email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.Unauthorized("invalid email or password")
	case err != nil:
		s.logger.Error("query user", zap.Error(err))
		return nil, apperrors.Internal("failed to query user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		s.logger.Info("login rejected", zap.String("user_id", user.ID))
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	return s.authenticated(*user)
}

// ParseToken returns the user id carried by a valid token.
func (s *AuthService) ParseToken(raw string) (string, *apperrors.APIError) {
	var claims jwt.RegisteredClaims
	_, err := s.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", apperrors.Unauthorized("invalid token")
	}
	if claims.Subject == "" {
		return "", apperrors.Unauthorized("invalid token subject")
	}
	return claims.Subject, nil
}

func (s *AuthService) authenticated(user model.User) (*AuthResult, *apperrors.APIError) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   user.ID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Internal("failed to sign token")
	}

	user.PasswordHash = ""
	return &AuthResult{Token: signed, User: user}, nil
}

func checkCredentials(creds Credentials) *apperrors.APIError {
	err := validate.Struct(creds)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && fieldErrs[0].Field() == "Password" {
		return apperrors.BadRequest("invalid_password", "password must be at least 6 characters")
	}
	return apperrors.BadRequest("invalid_email", "a valid email is required")
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

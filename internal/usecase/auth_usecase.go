package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"jobad-insights/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Login(ctx context.Context, username, password string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

// Auth authenticates the single pipeline operator configured through
// ADMIN_USERNAME and ADMIN_PASSWORD_HASH.
type Auth struct {
	username     string
	passwordHash []byte
	jwt          jwt.Service
}

func NewAuthUsecase(username, passwordHash string, jwtSvc jwt.Service) *Auth {
	return &Auth{username: username, passwordHash: []byte(passwordHash), jwt: jwtSvc}
}

func (u *Auth) Login(_ context.Context, username, password string) (TokenPair, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return TokenPair{}, ErrInvalidInput
	}
	if len(u.passwordHash) == 0 {
		return TokenPair{}, ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(u.username)) == 1
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil || !userOK {
		return TokenPair{}, ErrInvalidCredentials
	}
	return u.issue(username)
}

func (u *Auth) Refresh(_ context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, ErrRefreshTokenExpired
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) || claims.Operator != u.username {
		return TokenPair{}, ErrInvalidRefreshToken
	}
	return u.issue(claims.Operator)
}

func (u *Auth) issue(operator string) (TokenPair, error) {
	access, err := u.jwt.GenerateAccessToken(operator)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(operator)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

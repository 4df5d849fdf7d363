package services

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"user-accounts-api/internal/application/ports"
	"user-accounts-api/internal/domain/session"
	"user-accounts-api/internal/domain/user"
	"user-accounts-api/internal/infrastructure/jwt"
)

type AuthService struct {
	userRepository    user.Repository
	sessionRepository session.Repository
	tokens            ports.TokenService
	denylist          ports.TokenDenylist
	mCounter          *prometheus.CounterVec
	tokenTTL          time.Duration
}

func NewAuthService(
	userRepository user.Repository,
	sessionRepository session.Repository,
	tokens ports.TokenService,
	denylist ports.TokenDenylist,
	mCounter *prometheus.CounterVec,
	tokenTTL time.Duration,
) ports.Auth {
	return &AuthService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		tokens:            tokens,
		denylist:          denylist,
		mCounter:          mCounter,
		tokenTTL:          tokenTTL,
	}
}

// Login verifies the credentials of an active user, records a session and
// returns a signed token. Unknown, deactivated and wrong-password logins are
// indistinguishable to the caller.
func (as *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthToken, error) {
	u, err := as.userRepository.FetchUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Status {
		as.mCounter.WithLabelValues("login_failed_total").Inc()
		return nil, ErrInvalidCredentials
	}
	if err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		as.mCounter.WithLabelValues("login_failed_total").Inc()
		return nil, ErrInvalidCredentials
	}

	roles := u.Roles
	if len(roles) == 0 {
		roles = []string{user.RoleUser}
	}
	token, err := as.tokens.GenerateJWT(uint64(u.ID), roles, as.tokenTTL)
	if err != nil {
		return nil, ErrFailedToGenerateToken
	}

	if _, err = as.sessionRepository.CreateSession(ctx, u.ID); err != nil {
		return nil, fmt.Errorf("record session for user %d: %w", u.ID, err)
	}

	as.mCounter.WithLabelValues("login_success_total").Inc()

	return &ports.AuthToken{Token: token, ExpiresIn: as.tokenTTL}, nil
}

// Logout revokes the token until its expiry. Revoking twice is harmless.
func (as *AuthService) Logout(ctx context.Context, claims *jwt.Claims) error {
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := as.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}

	as.mCounter.WithLabelValues("logout_total").Inc()

	return nil
}

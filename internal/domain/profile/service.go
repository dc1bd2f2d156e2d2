package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medibook/medibook/internal/access"
	"github.com/medibook/medibook/internal/platform/auth"
)

// RefreshTokenTTL bounds how long a refresh token may be replayed
// before the holder must log in again.
const RefreshTokenTTL = 30 * 24 * time.Hour

// TokenPair is what login, register and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Service struct {
	profiles Repository
	tokens   RefreshTokenRepository
	secret   []byte

	// isBootstrapAdmin reports whether a registering email should be
	// materialized with the admin role instead of the default user role.
	isBootstrapAdmin func(email string) bool
}

func NewService(profiles Repository, tokens RefreshTokenRepository, secret []byte, isBootstrapAdmin func(string) bool) *Service {
	if isBootstrapAdmin == nil {
		isBootstrapAdmin = func(string) bool { return false }
	}
	return &Service{profiles: profiles, tokens: tokens, secret: secret, isBootstrapAdmin: isBootstrapAdmin}
}

func (s *Service) Register(ctx context.Context, email, password string, fullName *string) (*Profile, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, fmt.Errorf("valid email is required")
	}
	if len(password) < 8 {
		return nil, nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("hashing password: %w", err)
	}

	role := access.RoleUser
	if s.isBootstrapAdmin(email) {
		role = access.RoleAdmin
	}

	p := &Profile{
		Email:        email,
		FullName:     fullName,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	return p, pair, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*Profile, *TokenPair, error) {
	p, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, ErrNoEffect
	}
	if !auth.CheckPassword(p.PasswordHash, password) {
		return nil, nil, ErrNoEffect
	}

	pair, err := s.issueTokens(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	return p, pair, nil
}

// Refresh rotates the presented refresh token: the old token is revoked
// in the same call that resolves it, so a replayed token buys nothing.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.tokens.Consume(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, p)
}

func (s *Service) Logout(ctx context.Context, actor access.Actor) error {
	userID, err := uuid.Parse(actor.ID)
	if err != nil {
		return fmt.Errorf("invalid actor id: %w", err)
	}
	return s.tokens.RevokeAllForUser(ctx, userID)
}

func (s *Service) Me(ctx context.Context, actor access.Actor) (*Profile, error) {
	userID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor id: %w", err)
	}
	return s.profiles.GetByID(ctx, userID)
}

func (s *Service) UpdateName(ctx context.Context, actor access.Actor, fullName *string) (*Profile, error) {
	userID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor id: %w", err)
	}
	if err := s.profiles.UpdateName(ctx, userID, fullName); err != nil {
		return nil, err
	}
	return s.profiles.GetByID(ctx, userID)
}

// GrantAdmin promotes an existing profile by email. Exposed for the
// admin CLI rather than any HTTP route.
func (s *Service) GrantAdmin(ctx context.Context, email string) error {
	return s.profiles.GrantAdmin(ctx, email)
}

func (s *Service) issueTokens(ctx context.Context, p *Profile) (*TokenPair, error) {
	accessToken, err := auth.NewAccessToken(s.secret, p.UserID.String(), p.Email, p.Role)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	refreshToken, refreshHash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generating refresh token: %w", err)
	}
	if err := s.tokens.Store(ctx, p.UserID, refreshHash, time.Now().Add(RefreshTokenTTL)); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

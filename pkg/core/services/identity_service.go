package services

import (
	"context"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pooke74/LinkForge/pkg/core/domain"
	"github.com/pooke74/LinkForge/pkg/ports"
	"golang.org/x/crypto/bcrypt"
)

// SessionDuration matches the session cookie's 30-day lifetime.
const SessionDuration = 30 * 24 * time.Hour

var usernamePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

type IdentityService struct {
	repo   ports.Repository
	secret []byte
}

func NewIdentityService(repo ports.Repository, sessionSecret string) *IdentityService {
	return &IdentityService{repo: repo, secret: []byte(sessionSecret)}
}

func (s *IdentityService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, &domain.ValidationError{Message: "username, email and password are required"}
	}
	if len(username) < 3 || len(username) > 30 {
		return nil, &domain.ValidationError{Message: "username must be 3-30 characters"}
	}
	if !usernamePattern.MatchString(username) {
		return nil, &domain.ValidationError{Message: "username may only contain lowercase letters, digits, _ and -"}
	}
	if len(password) < 6 {
		return nil, &domain.ValidationError{Message: "password must be at least 6 characters"}
	}

	if existing, err := s.repo.GetUserByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &domain.ConflictError{Message: "email already in use"}
	}

	if existing, err := s.repo.GetUserByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &domain.ConflictError{Message: "username already taken"}
	}

	if domain.IsReservedUsername(username, true) {
		return nil, &domain.ValidationError{Message: "username is not available"}
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	// The id is generated only after every uniqueness check passed.
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Theme:        domain.DefaultTheme,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *IdentityService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, &domain.ValidationError{Message: "email and password are required"}
	}

	// Same message whether the email is unknown or the password is wrong.
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.VerifyPassword(password, user.PasswordHash) {
		return nil, &domain.AuthError{Message: "invalid email or password"}
	}
	return user, nil
}

func (s *IdentityService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *IdentityService) VerifyPassword(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}

// IssueSession mints the signed token carried by the session cookie.
// The subject is the user id; expiry mirrors the cookie lifetime.
func (s *IdentityService) IssueSession(userID string) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionDuration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ResolveSession returns the user a token belongs to. Any failure
// (missing, malformed, expired, unknown user) yields (nil, nil): callers
// treat an absent user as unauthenticated, never as a server error.
func (s *IdentityService) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, nil
	}

	return s.repo.GetUserByID(ctx, claims.Subject)
}

// UpdateProfile applies a partial profile update: nil fields keep the
// user's current values. Unknown theme selectors are normalized to the
// default at write time, matching the render-time fallback.
func (s *IdentityService) UpdateProfile(ctx context.Context, user *domain.User, displayName, bio, avatarURL, theme *string) error {
	next := func(p *string, current string) string {
		if p != nil {
			return *p
		}
		return current
	}

	selected := next(theme, user.Theme)
	if !domain.ValidTheme(selected) {
		selected = domain.DefaultTheme
	}

	return s.repo.UpdateUserProfile(ctx, user.ID,
		next(displayName, user.DisplayName),
		next(bio, user.Bio),
		next(avatarURL, user.AvatarURL),
		selected)
}

var _ ports.IdentityService = (*IdentityService)(nil)

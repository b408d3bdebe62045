package ports

import (
	"context"

	"github.com/pooke74/LinkForge/pkg/core/domain"
)

// Repository defines storage operations for users, links and click
// analytics. Two implementations exist (SQLite and a whole-file JSON
// document); both must behave identically for every operation.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateUserProfile is a no-op when id is absent.
	UpdateUserProfile(ctx context.Context, id, displayName, bio, avatarURL, theme string) error

	// Links
	// CreateLink assigns link.Position as max(position)+1 over the
	// owner's links (-1 baseline when the owner has none).
	CreateLink(ctx context.Context, link *domain.Link) error
	// GetLinksByOwner returns all of the owner's links, position ascending.
	GetLinksByOwner(ctx context.Context, ownerID string) ([]domain.Link, error)
	// UpdateLink matches by (id, owner); zero rows affected is a silent success.
	UpdateLink(ctx context.Context, id, ownerID, title, url, icon string, active bool) error
	// DeleteLink matches by (id, owner) and cascades to click events.
	DeleteLink(ctx context.Context, id, ownerID string) error

	// Analytics
	// RecordClick appends one event and increments the link's counter;
	// the two effects commit together.
	RecordClick(ctx context.Context, linkID, referrer, country string) error
	GetTotalClicks(ctx context.Context, ownerID string) (int64, error)
	GetLinkAnalytics(ctx context.Context, ownerID string) ([]domain.LinkAnalytics, error)
	CountUsers(ctx context.Context) (int64, error)

	// Dump exports the full dataset for migration between backends.
	Dump(ctx context.Context) (*domain.Snapshot, error)
	// Import loads a dump, skipping users and links whose ids already exist.
	Import(ctx context.Context, snap *domain.Snapshot) error

	Close() error
}

// IdentityService owns credentials and session resolution.
type IdentityService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	// IssueSession mints the opaque token stored in the session cookie.
	IssueSession(userID string) (string, error)
	// ResolveSession returns the user for a token. An absent, malformed,
	// expired or unknown token yields (nil, nil): callers treat a nil
	// user as unauthenticated.
	ResolveSession(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User, displayName, bio, avatarURL, theme *string) error
}

// LinkService owns the link lifecycle for an authenticated owner.
type LinkService interface {
	Create(ctx context.Context, ownerID, title, url, icon string) ([]domain.Link, error)
	Update(ctx context.Context, ownerID, id, title, url, icon string, active *bool) ([]domain.Link, error)
	// Delete is idempotent; foreign or unknown ids are silent no-ops.
	Delete(ctx context.Context, ownerID, id string) ([]domain.Link, error)
	ListForOwner(ctx context.Context, ownerID string) ([]domain.Link, error)
	// PublicLinks returns only active links, in position order.
	PublicLinks(ctx context.Context, ownerID string) ([]domain.Link, error)
}

// ClickService records click analytics. Record is best-effort: failures
// are logged and swallowed, never surfaced to the visitor.
type ClickService interface {
	Record(ctx context.Context, linkID, referrer string) error
}

// StatsService aggregates dashboard numbers for an owner.
type StatsService interface {
	OwnerStats(ctx context.Context, ownerID string) (*domain.OwnerStats, error)
}

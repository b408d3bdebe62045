package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pooke74/LinkForge/pkg/core/domain"
	"github.com/pooke74/LinkForge/pkg/ports"
)

type LinkService struct {
	repo ports.Repository
}

func NewLinkService(repo ports.Repository) *LinkService {
	return &LinkService{repo: repo}
}

// Create appends a link at the end of the owner's page and returns the
// owner's full link set.
func (s *LinkService) Create(ctx context.Context, ownerID, title, url, icon string) ([]domain.Link, error) {
	if title == "" || url == "" {
		return nil, &domain.ValidationError{Message: "title and url are required"}
	}
	if icon == "" {
		icon = domain.DefaultIcon
	}

	link := &domain.Link{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Title:     title,
		URL:       url,
		Icon:      icon,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateLink(ctx, link); err != nil {
		return nil, err
	}
	return s.repo.GetLinksByOwner(ctx, ownerID)
}

// Update edits a link in place. A mismatched owner or unknown id changes
// nothing and still succeeds; the returned list reflects whatever is
// stored. A nil active means the caller omitted it and defaults to true.
func (s *LinkService) Update(ctx context.Context, ownerID, id, title, url, icon string, active *bool) ([]domain.Link, error) {
	if id == "" {
		return nil, &domain.ValidationError{Message: "link id is required"}
	}
	if title == "" || url == "" {
		return nil, &domain.ValidationError{Message: "title and url are required"}
	}
	if icon == "" {
		icon = domain.DefaultIcon
	}
	isActive := true
	if active != nil {
		isActive = *active
	}

	if err := s.repo.UpdateLink(ctx, id, ownerID, title, url, icon, isActive); err != nil {
		return nil, err
	}
	return s.repo.GetLinksByOwner(ctx, ownerID)
}

// Delete removes a link and its click events. Idempotent: unknown or
// foreign-owned ids are silent no-ops.
func (s *LinkService) Delete(ctx context.Context, ownerID, id string) ([]domain.Link, error) {
	if id == "" {
		return nil, &domain.ValidationError{Message: "link id is required"}
	}

	if err := s.repo.DeleteLink(ctx, id, ownerID); err != nil {
		return nil, err
	}
	return s.repo.GetLinksByOwner(ctx, ownerID)
}

// ListForOwner is the dashboard view: every link, active or not.
func (s *LinkService) ListForOwner(ctx context.Context, ownerID string) ([]domain.Link, error) {
	return s.repo.GetLinksByOwner(ctx, ownerID)
}

// PublicLinks is the public page view: active links only, in position order.
func (s *LinkService) PublicLinks(ctx context.Context, ownerID string) ([]domain.Link, error) {
	links, err := s.repo.GetLinksByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	active := links[:0]
	for _, l := range links {
		if l.Active {
			active = append(active, l)
		}
	}
	return active, nil
}

var _ ports.LinkService = (*LinkService)(nil)

package services

import (
	"context"

	"github.com/pooke74/LinkForge/pkg/core/domain"
	"github.com/pooke74/LinkForge/pkg/ports"
)

// ClickService wraps the analytics write path: one counter increment
// plus one appended event per recorded click. No deduplication, rate
// limiting or bot filtering; every call counts.
type ClickService struct {
	repo ports.Repository
}

func NewClickService(repo ports.Repository) *ClickService {
	return &ClickService{repo: repo}
}

// Record stores one click. The country field is carried for schema
// parity but is always empty for now.
func (s *ClickService) Record(ctx context.Context, linkID, referrer string) error {
	if linkID == "" {
		return &domain.ValidationError{Message: "link id is required"}
	}
	return s.repo.RecordClick(ctx, linkID, referrer, "")
}

var _ ports.ClickService = (*ClickService)(nil)

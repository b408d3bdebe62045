package domain

import "time"

// DefaultIcon is used when a link is created without an icon glyph.
const DefaultIcon = "🔗"

// Link is one outbound entry on a user's public page.
//
// Position is assigned as max(position)+1 over the owner's links at
// creation time and is never renumbered; deletions leave gaps.
type Link struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Icon      string    `json:"icon"`
	Position  int       `json:"position"`
	Clicks    int64     `json:"clicks"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

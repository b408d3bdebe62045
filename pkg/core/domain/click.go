package domain

import "time"

// ClickEvent is an append-only analytics record for a single click.
// Country is carried through the write path but currently always empty.
type ClickEvent struct {
	ID        int64     `json:"id"`
	LinkID    string    `json:"link_id"`
	Referrer  string    `json:"referrer"`
	Country   string    `json:"country"`
	ClickedAt time.Time `json:"clicked_at"`
}

// LinkAnalytics is a per-link aggregate row for the dashboard:
// lifetime clicks plus the event count over the trailing seven days.
type LinkAnalytics struct {
	LinkID       string `json:"link_id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	Clicks       int64  `json:"clicks"`
	RecentClicks int64  `json:"recent_clicks"`
}

// Package jsonfile persists the whole dataset as a single JSON document
// that is read in full, mutated in memory and rewritten on every write.
// That is acceptable at this system's scale and is a documented
// limitation, not an optimization target. A process-local mutex
// serializes writers; concurrent processes sharing the file can still
// race each other's read-modify-write cycles.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/pooke74/LinkForge/pkg/core/domain"
	"github.com/pooke74/LinkForge/pkg/ports"
)

type JSONFileRepository struct {
	mu   sync.Mutex
	path string
}

func NewJSONFileRepository(path string) (*JSONFileRepository, error) {
	r := &JSONFileRepository{path: path}

	// Create-on-first-use: an absent file is an empty dataset.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := r.write(&domain.Snapshot{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *JSONFileRepository) Close() error { return nil }

func (r *JSONFileRepository) read() (*domain.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *JSONFileRepository) write(snap *domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	// Write-then-rename so a crash mid-write never truncates the dataset.
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".linkforge-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}

// mutate runs fn against the current snapshot and rewrites the file
// when fn reports a change.
func (r *JSONFileRepository) mutate(fn func(snap *domain.Snapshot) (bool, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.read()
	if err != nil {
		return err
	}
	changed, err := fn(snap)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return r.write(snap)
}

// --- Users ---

func (r *JSONFileRepository) CreateUser(_ context.Context, user *domain.User) error {
	return r.mutate(func(snap *domain.Snapshot) (bool, error) {
		for _, u := range snap.Users {
			if u.Username == user.Username || u.Email == user.Email {
				return false, &domain.ConflictError{Message: "username or email already taken"}
			}
		}
		snap.Users = append(snap.Users, *user)
		return true, nil
	})
}

func (r *JSONFileRepository) findUser(match func(u *domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.read()
	if err != nil {
		return nil, err
	}
	for i := range snap.Users {
		if match(&snap.Users[i]) {
			u := snap.Users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *JSONFileRepository) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	return r.findUser(func(u *domain.User) bool { return u.ID == id })
}

func (r *JSONFileRepository) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.findUser(func(u *domain.User) bool { return u.Username == username })
}

func (r *JSONFileRepository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.findUser(func(u *domain.User) bool { return u.Email == email })
}

func (r *JSONFileRepository) UpdateUserProfile(_ context.Context, id, displayName, bio, avatarURL, theme string) error {
	return r.mutate(func(snap *domain.Snapshot) (bool, error) {
		for i := range snap.Users {
			if snap.Users[i].ID == id {
				snap.Users[i].DisplayName = displayName
				snap.Users[i].Bio = bio
				snap.Users[i].AvatarURL = avatarURL
				snap.Users[i].Theme = theme
				return true, nil
			}
		}
		// Absent id is a no-op, mirroring an UPDATE matching zero rows.
		return false, nil
	})
}

// --- Links ---

func (r *JSONFileRepository) CreateLink(_ context.Context, link *domain.Link) error {
	return r.mutate(func(snap *domain.Snapshot) (bool, error) {
		next := 0
		for _, l := range snap.Links {
			if l.UserID == link.UserID && l.Position >= next {
				next = l.Position + 1
			}
		}
		link.Position = next
		snap.Links = append(snap.Links, *link)
		return true, nil
	})
}

func (r *JSONFileRepository) GetLinksByOwner(_ context.Context, ownerID string) ([]domain.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.read()
	if err != nil {
		return nil, err
	}

	var links []domain.Link
	for _, l := range snap.Links {
		if l.UserID == ownerID {
			links = append(links, l)
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Position < links[j].Position })
	return links, nil
}

func (r *JSONFileRepository) UpdateLink(_ context.Context, id, ownerID, title, url, icon string, active bool) error {
	return r.mutate(func(snap *domain.Snapshot) (bool, error) {
		for i := range snap.Links {
			if snap.Links[i].ID == id && snap.Links[i].UserID == ownerID {
				snap.Links[i].Title = title
				snap.Links[i].URL = url
				snap.Links[i].Icon = icon
				snap.Links[i].Active = active
				return true, nil
			}
		}
		return false, nil
	})
}

func (r *JSONFileRepository) DeleteLink(_ context.Context, id, ownerID string) error {
	return r.mutate(func(snap *domain.Snapshot) (bool, error) {
		idx := -1
		for i := range snap.Links {
			if snap.Links[i].ID == id && snap.Links[i].UserID == ownerID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false, nil
		}

		snap.Links = append(snap.Links[:idx], snap.Links[idx+1:]...)

		kept := snap.Analytics[:0]
		for _, e := range snap.Analytics {
			if e.LinkID != id {
				kept = append(kept, e)
			}
		}
		snap.Analytics = kept
		return true, nil
	})
}

// --- Analytics ---

func (r *JSONFileRepository) RecordClick(_ context.Context, linkID, referrer, country string) error {
	return r.mutate(func(snap *domain.Snapshot) (bool, error) {
		idx := -1
		for i := range snap.Links {
			if snap.Links[i].ID == linkID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false, domain.ErrNotFound
		}

		snap.Links[idx].Clicks++

		nextID := int64(1)
		if n := len(snap.Analytics); n > 0 {
			nextID = snap.Analytics[n-1].ID + 1
		}
		snap.Analytics = append(snap.Analytics, domain.ClickEvent{
			ID:        nextID,
			LinkID:    linkID,
			Referrer:  referrer,
			Country:   country,
			ClickedAt: time.Now().UTC(),
		})
		return true, nil
	})
}

func (r *JSONFileRepository) GetTotalClicks(_ context.Context, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.read()
	if err != nil {
		return 0, err
	}

	var total int64
	for _, l := range snap.Links {
		if l.UserID == ownerID {
			total += l.Clicks
		}
	}
	return total, nil
}

func (r *JSONFileRepository) GetLinkAnalytics(_ context.Context, ownerID string) ([]domain.LinkAnalytics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.read()
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -7)
	recent := make(map[string]int64)
	for _, e := range snap.Analytics {
		if e.ClickedAt.After(cutoff) {
			recent[e.LinkID]++
		}
	}

	var stats []domain.LinkAnalytics
	for _, l := range snap.Links {
		if l.UserID != ownerID {
			continue
		}
		stats = append(stats, domain.LinkAnalytics{
			LinkID:       l.ID,
			Title:        l.Title,
			URL:          l.URL,
			Clicks:       l.Clicks,
			RecentClicks: recent[l.ID],
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Clicks > stats[j].Clicks })
	return stats, nil
}

func (r *JSONFileRepository) CountUsers(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.read()
	if err != nil {
		return 0, err
	}
	return int64(len(snap.Users)), nil
}

// --- Migration ---

func (r *JSONFileRepository) Dump(_ context.Context) (*domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

func (r *JSONFileRepository) Import(_ context.Context, in *domain.Snapshot) error {
	return r.mutate(func(snap *domain.Snapshot) (bool, error) {
		users := make(map[string]bool, len(snap.Users))
		for _, u := range snap.Users {
			users[u.ID] = true
		}
		links := make(map[string]bool, len(snap.Links))
		for _, l := range snap.Links {
			links[l.ID] = true
		}

		changed := false
		for _, u := range in.Users {
			if !users[u.ID] {
				snap.Users = append(snap.Users, u)
				changed = true
			}
		}
		for _, l := range in.Links {
			if !links[l.ID] {
				snap.Links = append(snap.Links, l)
				changed = true
			}
		}

		nextID := int64(1)
		if n := len(snap.Analytics); n > 0 {
			nextID = snap.Analytics[n-1].ID + 1
		}
		for _, e := range in.Analytics {
			e.ID = nextID
			nextID++
			snap.Analytics = append(snap.Analytics, e)
			changed = true
		}
		return changed, nil
	})
}

// Ensure interface compliance
var _ ports.Repository = (*JSONFileRepository)(nil)

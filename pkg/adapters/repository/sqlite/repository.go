package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pooke74/LinkForge/pkg/core/domain"
	"github.com/pooke74/LinkForge/pkg/ports"
	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		display_name TEXT DEFAULT '',
		bio TEXT DEFAULT '',
		avatar_url TEXT DEFAULT '',
		theme TEXT DEFAULT 'midnight',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS links (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		icon TEXT DEFAULT '🔗',
		position INTEGER DEFAULT 0,
		clicks INTEGER DEFAULT 0,
		active INTEGER DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_links_user_id ON links(user_id);

	CREATE TABLE IF NOT EXISTS analytics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		link_id TEXT NOT NULL,
		referrer TEXT DEFAULT '',
		country TEXT DEFAULT '',
		clicked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(link_id) REFERENCES links(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_analytics_link_id ON analytics(link_id);
	`
	_, err := db.Exec(query)
	return err
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// --- Users ---

func (r *SQLiteRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, display_name, bio, avatar_url, theme, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash,
		user.DisplayName, user.Bio, user.AvatarURL, user.Theme, user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return &domain.ConflictError{Message: "username or email already taken"}
		}
		return err
	}
	return nil
}

const userColumns = `id, username, email, password_hash, display_name, bio, avatar_url, theme, created_at`

func (r *SQLiteRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.DisplayName, &u.Bio, &u.AvatarURL, &u.Theme, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return r.scanUser(row)
}

func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return r.scanUser(row)
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return r.scanUser(row)
}

func (r *SQLiteRepository) UpdateUserProfile(ctx context.Context, id, displayName, bio, avatarURL, theme string) error {
	query := `UPDATE users SET display_name = ?, bio = ?, avatar_url = ?, theme = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, displayName, bio, avatarURL, theme, id)
	return err
}

// --- Links ---

func (r *SQLiteRepository) CreateLink(ctx context.Context, link *domain.Link) error {
	// Position is computed inside the insert itself so the read and the
	// write are one statement under SQLite's write lock.
	query := `INSERT INTO links (id, user_id, title, url, icon, position, clicks, active, created_at)
			  VALUES (?, ?, ?, ?, ?,
				  (SELECT COALESCE(MAX(position), -1) + 1 FROM links WHERE user_id = ?),
				  0, ?, ?)`

	active := 0
	if link.Active {
		active = 1
	}
	_, err := r.db.ExecContext(ctx, query, link.ID, link.UserID, link.Title, link.URL, link.Icon,
		link.UserID, active, link.CreatedAt)
	if err != nil {
		return err
	}

	return r.db.QueryRowContext(ctx, `SELECT position FROM links WHERE id = ?`, link.ID).Scan(&link.Position)
}

func (r *SQLiteRepository) GetLinksByOwner(ctx context.Context, ownerID string) ([]domain.Link, error) {
	query := `SELECT id, user_id, title, url, icon, position, clicks, active, created_at
			  FROM links WHERE user_id = ? ORDER BY position ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		var l domain.Link
		var active int
		if err := rows.Scan(&l.ID, &l.UserID, &l.Title, &l.URL, &l.Icon,
			&l.Position, &l.Clicks, &active, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Active = active != 0
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *SQLiteRepository) UpdateLink(ctx context.Context, id, ownerID, title, url, icon string, active bool) error {
	query := `UPDATE links SET title = ?, url = ?, icon = ?, active = ? WHERE id = ? AND user_id = ?`

	activeInt := 0
	if active {
		activeInt = 1
	}
	// Zero rows affected means missing or foreign-owned; both are
	// silent successes from the caller's point of view.
	_, err := r.db.ExecContext(ctx, query, title, url, icon, activeInt, id, ownerID)
	return err
}

func (r *SQLiteRepository) DeleteLink(ctx context.Context, id, ownerID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Cascade by hand so behavior does not depend on the foreign_keys
	// pragma being enabled on the caller's connection string.
	_, err = tx.ExecContext(ctx,
		`DELETE FROM analytics WHERE link_id IN (SELECT id FROM links WHERE id = ? AND user_id = ?)`,
		id, ownerID)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM links WHERE id = ? AND user_id = ?`, id, ownerID); err != nil {
		return err
	}

	return tx.Commit()
}

// --- Analytics ---

func (r *SQLiteRepository) RecordClick(ctx context.Context, linkID, referrer, country string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE links SET clicks = clicks + 1 WHERE id = ?`, linkID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO analytics (link_id, referrer, country, clicked_at) VALUES (?, ?, ?, ?)`,
		linkID, referrer, country, time.Now().UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLiteRepository) GetTotalClicks(ctx context.Context, ownerID string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(clicks), 0) FROM links WHERE user_id = ?`, ownerID).Scan(&total)
	return total, err
}

func (r *SQLiteRepository) GetLinkAnalytics(ctx context.Context, ownerID string) ([]domain.LinkAnalytics, error) {
	query := `
		SELECT l.id, l.title, l.url, l.clicks, COUNT(a.id)
		FROM links l
		LEFT JOIN analytics a ON a.link_id = l.id AND a.clicked_at > datetime('now', '-7 days')
		WHERE l.user_id = ?
		GROUP BY l.id
		ORDER BY l.clicks DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []domain.LinkAnalytics
	for rows.Next() {
		var s domain.LinkAnalytics
		if err := rows.Scan(&s.LinkID, &s.Title, &s.URL, &s.Clicks, &s.RecentClicks); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *SQLiteRepository) CountUsers(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total)
	return total, err
}

// --- Migration ---

func (r *SQLiteRepository) Dump(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}

	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
			&u.DisplayName, &u.Bio, &u.AvatarURL, &u.Theme, &u.CreatedAt); err != nil {
			return nil, err
		}
		snap.Users = append(snap.Users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT id, user_id, title, url, icon, position, clicks, active, created_at FROM links`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var l domain.Link
		var active int
		if err := rows.Scan(&l.ID, &l.UserID, &l.Title, &l.URL, &l.Icon,
			&l.Position, &l.Clicks, &active, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Active = active != 0
		snap.Links = append(snap.Links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT id, link_id, referrer, country, clicked_at FROM analytics ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var e domain.ClickEvent
		if err := rows.Scan(&e.ID, &e.LinkID, &e.Referrer, &e.Country, &e.ClickedAt); err != nil {
			return nil, err
		}
		snap.Analytics = append(snap.Analytics, e)
	}
	return snap, rows.Err()
}

func (r *SQLiteRepository) Import(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, u := range snap.Users {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			u.ID, u.Username, u.Email, u.PasswordHash, u.DisplayName, u.Bio, u.AvatarURL, u.Theme, u.CreatedAt)
		if err != nil {
			return err
		}
	}

	for _, l := range snap.Links {
		active := 0
		if l.Active {
			active = 1
		}
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO links (id, user_id, title, url, icon, position, clicks, active, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, l.UserID, l.Title, l.URL, l.Icon, l.Position, l.Clicks, active, l.CreatedAt)
		if err != nil {
			return err
		}
	}

	for _, e := range snap.Analytics {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO analytics (link_id, referrer, country, clicked_at) VALUES (?, ?, ?, ?)`,
			e.LinkID, e.Referrer, e.Country, e.ClickedAt.UTC().Format("2006-01-02 15:04:05"))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Ensure interface compliance
var _ ports.Repository = (*SQLiteRepository)(nil)

package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pooke74/LinkForge/pkg/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*JSONFileRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "linkforge.json")
	repo, err := NewJSONFileRepository(path)
	require.NoError(t, err)
	return repo, path
}

func addUser(t *testing.T, repo *JSONFileRepository, id, username, email string) {
	t.Helper()
	require.NoError(t, repo.CreateUser(context.Background(), &domain.User{
		ID: id, Username: username, Email: email, PasswordHash: "h",
		Theme: domain.DefaultTheme, CreatedAt: time.Now().UTC(),
	}))
}

func addLink(t *testing.T, repo *JSONFileRepository, id, ownerID, title string) *domain.Link {
	t.Helper()
	link := &domain.Link{ID: id, UserID: ownerID, Title: title, URL: "https://a.com",
		Icon: domain.DefaultIcon, Active: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateLink(context.Background(), link))
	return link
}

func TestFileLayout_ThreeTopLevelArrays(t *testing.T) {
	repo, path := newTestRepo(t)
	addUser(t, repo, "u1", "alice", "alice@x.com")
	addLink(t, repo, "l1", "u1", "Site")
	require.NoError(t, repo.RecordClick(context.Background(), "l1", "ref", ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "users")
	assert.Contains(t, doc, "links")
	assert.Contains(t, doc, "analytics")
}

func TestReopen_PreservesData(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	addUser(t, repo, "u1", "alice", "alice@x.com")
	addLink(t, repo, "l1", "u1", "Site")
	require.NoError(t, repo.RecordClick(ctx, "l1", "", ""))

	// Every read goes through the file, so the hash must survive the
	// round trip even within the same process.
	u, err := repo.GetUserByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "h", u.PasswordHash)

	reopened, err := NewJSONFileRepository(path)
	require.NoError(t, err)

	u, err = reopened.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "h", u.PasswordHash)

	links, err := reopened.GetLinksByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, int64(1), links[0].Clicks)
}

func TestCreateUser_Duplicates(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	addUser(t, repo, "u1", "alice", "alice@x.com")

	var conflict *domain.ConflictError
	err := repo.CreateUser(ctx, &domain.User{ID: "u2", Username: "alice", Email: "b@x.com"})
	require.ErrorAs(t, err, &conflict)

	err = repo.CreateUser(ctx, &domain.User{ID: "u3", Username: "bob", Email: "alice@x.com"})
	require.ErrorAs(t, err, &conflict)
}

func TestPositions_AssignedAndKept(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	addUser(t, repo, "u1", "alice", "alice@x.com")

	first := addLink(t, repo, "first", "u1", "Site")
	second := addLink(t, repo, "second", "u1", "Blog")
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)

	require.NoError(t, repo.DeleteLink(ctx, "first", "u1"))

	links, err := repo.GetLinksByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, 1, links[0].Position)

	third := addLink(t, repo, "third", "u1", "Shop")
	assert.Equal(t, 2, third.Position)
}

func TestOwnerScoping_SilentNoops(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	addUser(t, repo, "u1", "alice", "alice@x.com")
	addLink(t, repo, "l1", "u1", "Site")

	require.NoError(t, repo.UpdateLink(ctx, "l1", "intruder", "Hacked", "https://evil.com", "X", false))
	require.NoError(t, repo.DeleteLink(ctx, "l1", "intruder"))

	links, err := repo.GetLinksByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "Site", links[0].Title)
	assert.True(t, links[0].Active)
}

func TestRecordClick_IncrementAndAppend(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	addUser(t, repo, "u1", "alice", "alice@x.com")
	addLink(t, repo, "l1", "u1", "Site")

	require.NoError(t, repo.RecordClick(ctx, "l1", "https://ref.example", ""))
	require.NoError(t, repo.RecordClick(ctx, "l1", "", ""))

	links, err := repo.GetLinksByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), links[0].Clicks)

	snap, err := repo.Dump(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Analytics, 2)
	assert.Equal(t, "https://ref.example", snap.Analytics[0].Referrer)

	assert.ErrorIs(t, repo.RecordClick(ctx, "ghost", "", ""), domain.ErrNotFound)
}

func TestDelete_CascadesAnalytics(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	addUser(t, repo, "u1", "alice", "alice@x.com")
	addLink(t, repo, "l1", "u1", "Site")
	addLink(t, repo, "l2", "u1", "Blog")
	require.NoError(t, repo.RecordClick(ctx, "l1", "", ""))
	require.NoError(t, repo.RecordClick(ctx, "l2", "", ""))

	require.NoError(t, repo.DeleteLink(ctx, "l1", "u1"))

	snap, err := repo.Dump(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Analytics, 1)
	assert.Equal(t, "l2", snap.Analytics[0].LinkID)
}

func TestAggregates(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	addUser(t, repo, "u1", "alice", "alice@x.com")
	addUser(t, repo, "u2", "bob", "bob@x.com")
	addLink(t, repo, "l1", "u1", "Site")
	addLink(t, repo, "l2", "u1", "Blog")

	require.NoError(t, repo.RecordClick(ctx, "l2", "", ""))
	require.NoError(t, repo.RecordClick(ctx, "l2", "", ""))
	require.NoError(t, repo.RecordClick(ctx, "l1", "", ""))

	total, err := repo.GetTotalClicks(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	users, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), users)

	stats, err := repo.GetLinkAnalytics(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "l2", stats[0].LinkID)
	assert.Equal(t, int64(2), stats[0].Clicks)
	assert.Equal(t, int64(2), stats[0].RecentClicks)
}

func TestImport_SkipsExistingIDs(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	addUser(t, repo, "u1", "alice", "alice@x.com")
	addLink(t, repo, "l1", "u1", "Site")

	incoming := &domain.Snapshot{
		Users: []domain.User{
			{ID: "u1", Username: "alice-renamed", Email: "alice@x.com"},
			{ID: "u2", Username: "bob", Email: "bob@x.com"},
		},
		Links: []domain.Link{
			{ID: "l1", UserID: "u1", Title: "Overwritten?"},
			{ID: "l2", UserID: "u2", Title: "Bob's", URL: "https://b.com", Active: true},
		},
	}
	require.NoError(t, repo.Import(ctx, incoming))

	u, err := repo.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username, "existing ids must be skipped")

	u, err = repo.GetUserByID(ctx, "u2")
	require.NoError(t, err)
	require.NotNil(t, u)

	links, err := repo.GetLinksByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "Site", links[0].Title)
}

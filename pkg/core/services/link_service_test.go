package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pooke74/LinkForge/pkg/adapters/repository/jsonfile"
	"github.com/pooke74/LinkForge/pkg/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLinks(t *testing.T) *LinkService {
	t.Helper()
	repo, err := jsonfile.NewJSONFileRepository(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	return NewLinkService(repo)
}

func TestCreate_Defaults(t *testing.T) {
	svc := newTestLinks(t)
	ctx := context.Background()

	links, err := svc.Create(ctx, "owner", "Site", "https://a.com", "")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, domain.DefaultIcon, links[0].Icon)
	assert.True(t, links[0].Active)
	assert.Equal(t, 0, links[0].Position)
	assert.Zero(t, links[0].Clicks)
	assert.NotEmpty(t, links[0].ID)
}

func TestCreate_RequiredFields(t *testing.T) {
	svc := newTestLinks(t)
	ctx := context.Background()

	var validation *domain.ValidationError
	_, err := svc.Create(ctx, "owner", "", "https://a.com", "")
	assert.ErrorAs(t, err, &validation)

	_, err = svc.Create(ctx, "owner", "Site", "", "")
	assert.ErrorAs(t, err, &validation)
}

func TestCreate_AppendsInOrder(t *testing.T) {
	svc := newTestLinks(t)
	ctx := context.Background()

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := svc.Create(ctx, "owner", title, "https://a.com", "")
		require.NoError(t, err)
	}

	links, err := svc.ListForOwner(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, links, 3)
	for i, l := range links {
		assert.Equal(t, i, l.Position)
	}
	assert.Equal(t, []string{"One", "Two", "Three"},
		[]string{links[0].Title, links[1].Title, links[2].Title})
}

func TestUpdate_ActiveDefaultsTrue(t *testing.T) {
	svc := newTestLinks(t)
	ctx := context.Background()

	links, err := svc.Create(ctx, "owner", "Site", "https://a.com", "")
	require.NoError(t, err)
	id := links[0].ID

	inactive := false
	links, err = svc.Update(ctx, "owner", id, "Site", "https://a.com", "", &inactive)
	require.NoError(t, err)
	assert.False(t, links[0].Active)

	// Omitted active flips it back on.
	links, err = svc.Update(ctx, "owner", id, "Site", "https://a.com", "", nil)
	require.NoError(t, err)
	assert.True(t, links[0].Active)
}

func TestUpdate_ForeignOwnerIsNoop(t *testing.T) {
	svc := newTestLinks(t)
	ctx := context.Background()

	links, err := svc.Create(ctx, "owner", "Site", "https://a.com", "")
	require.NoError(t, err)
	id := links[0].ID

	// Succeeds, changes nothing the intruder can see or the owner loses.
	_, err = svc.Update(ctx, "intruder", id, "Hacked", "https://evil.com", "", nil)
	require.NoError(t, err)

	links, err = svc.ListForOwner(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, "Site", links[0].Title)
}

func TestDelete_Idempotent(t *testing.T) {
	svc := newTestLinks(t)
	ctx := context.Background()

	links, err := svc.Create(ctx, "owner", "Site", "https://a.com", "")
	require.NoError(t, err)
	id := links[0].ID

	links, err = svc.Delete(ctx, "owner", id)
	require.NoError(t, err)
	assert.Empty(t, links)

	// Deleting again, or a foreign id, still succeeds.
	links, err = svc.Delete(ctx, "owner", id)
	require.NoError(t, err)
	assert.Empty(t, links)

	_, err = svc.Delete(ctx, "someone-else", "unknown")
	require.NoError(t, err)
}

func TestPublicLinks_ActiveOnly(t *testing.T) {
	svc := newTestLinks(t)
	ctx := context.Background()

	links, err := svc.Create(ctx, "owner", "Visible", "https://a.com", "")
	require.NoError(t, err)
	links, err = svc.Create(ctx, "owner", "Hidden", "https://b.com", "")
	require.NoError(t, err)

	hidden := links[1].ID
	inactive := false
	_, err = svc.Update(ctx, "owner", hidden, "Hidden", "https://b.com", "", &inactive)
	require.NoError(t, err)

	public, err := svc.PublicLinks(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Visible", public[0].Title)

	// The dashboard still sees both.
	all, err := svc.ListForOwner(ctx, "owner")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

package story

import (
	"context"
	"testing"

	"tourhub/models"
	"tourhub/services/authz"
	"tourhub/testutil"
	"tourhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	author   = authz.Caller{Email: "writer@example.com", Role: models.RoleTourist}
	stranger = authz.Caller{Email: "else@example.com", Role: models.RoleGuide}
)

func newService() (*DefaultStoryService, *testutil.StoryRepo) {
	users := testutil.NewUserRepo(
		models.User{Email: author.Email, Name: "Writer", Photo: "w.png", Role: models.RoleTourist},
		models.User{Email: stranger.Email, Name: "Else", Role: models.RoleGuide},
	)
	stories := testutil.NewStoryRepo()
	return NewStoryService(stories, users, zap.NewNop()), stories
}

func create(t *testing.T, svc *DefaultStoryService) *models.Story {
	t.Helper()
	s, err := svc.Create(context.Background(), author, CreateStoryRequest{Title: "Sundarbans", Text: "Tigers!", Images: []string{"a.png", " "}})
	require.NoError(t, err)
	return s
}

func TestCreateSnapshotsAuthor(t *testing.T) {
	svc, _ := newService()
	s := create(t, svc)

	assert.Equal(t, "Writer", s.Author.Name)
	assert.Equal(t, "w.png", s.Author.Photo)
	assert.Equal(t, author.Email, s.Author.Email)
	assert.Equal(t, models.RoleTourist, s.Author.Role)
	assert.False(t, s.Author.ID.IsZero())
	assert.Equal(t, []string{"a.png"}, s.Images)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newService()

	for _, req := range []CreateStoryRequest{
		{Text: "t", Images: []string{"a"}},
		{Title: "t", Images: []string{"a"}},
		{Title: "t", Text: "t"},
	} {
		_, err := svc.Create(context.Background(), author, req)
		assert.True(t, utils.IsKind(err, utils.KindValidation))
	}
}

func TestOnlyAuthorMayModify(t *testing.T) {
	svc, repo := newService()
	s := create(t, svc)
	id := s.ID.Hex()
	ctx := context.Background()
	title := "Hijacked"

	_, err := svc.UpdateText(ctx, stranger, id, UpdateStoryRequest{Title: &title})
	assert.True(t, utils.IsKind(err, utils.KindForbidden))
	_, err = svc.AddImages(ctx, stranger, id, []string{"x.png"})
	assert.True(t, utils.IsKind(err, utils.KindForbidden))
	_, err = svc.RemoveImage(ctx, stranger, id, "a.png")
	assert.True(t, utils.IsKind(err, utils.KindForbidden))
	assert.True(t, utils.IsKind(svc.Delete(ctx, stranger, id), utils.KindForbidden))

	stored, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sundarbans", stored.Title)
	assert.Equal(t, []string{"a.png"}, stored.Images)
}

func TestAuthorEditsStory(t *testing.T) {
	svc, repo := newService()
	s := create(t, svc)
	id := s.ID.Hex()
	ctx := context.Background()
	title := "Sundarbans, again"

	_, err := svc.UpdateText(ctx, author, id, UpdateStoryRequest{Title: &title})
	require.NoError(t, err)
	_, err = svc.AddImages(ctx, author, id, []string{"b.png", "c.png"})
	require.NoError(t, err)
	_, err = svc.RemoveImage(ctx, author, id, "a.png")
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, title, stored.Title)
	assert.Equal(t, "Tigers!", stored.Text)
	assert.Equal(t, []string{"b.png", "c.png"}, stored.Images)

	require.NoError(t, svc.Delete(ctx, author, id))
	_, err = svc.Get(ctx, id)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestListMine(t *testing.T) {
	svc, _ := newService()
	create(t, svc)
	create(t, svc)

	mine, err := svc.ListMine(context.Background(), author)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	theirs, err := svc.ListMine(context.Background(), stranger)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

package user

import (
	"context"
	"testing"

	"tourhub/models"
	"tourhub/testutil"
	"tourhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(seed ...models.User) (*DefaultUserService, *testutil.UserRepo) {
	repo := testutil.NewUserRepo(seed...)
	return NewUserService(repo, zap.NewNop()), repo
}

func validApplication() GuideApplicationRequest {
	return GuideApplicationRequest{Title: "Mountain guide", Reason: "Ten years of hiking", CVLink: "https://cv.example.com/me"}
}

func TestRegisterIsIdempotent(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	created, err := svc.Register(ctx, models.User{Email: "new@example.com", Name: "New"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Register(ctx, models.User{Email: "new@example.com", Name: "Again"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, repo.Len())

	u, err := repo.GetByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "New", u.Name)
	assert.Equal(t, models.RoleUser, u.Role)
}

func TestRegisterIgnoresClientRole(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Register(context.Background(), models.User{Email: "sneaky@example.com", Role: models.RoleAdmin, Status: models.StatusApproved})
	require.NoError(t, err)

	u, err := repo.GetByEmail(context.Background(), "sneaky@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Equal(t, models.StatusNone, u.Status)
}

func TestRegisterRequiresEmail(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Register(context.Background(), models.User{Name: "Nobody"})
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestGetRoleUnknownIsNil(t *testing.T) {
	svc, _ := newService(models.User{Email: "g@example.com", Role: models.RoleGuide})

	role, err := svc.GetRole(context.Background(), "g@example.com")
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, models.RoleGuide, *role)

	role, err = svc.GetRole(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, role)
}

func TestApplyForGuideTwiceIsRejected(t *testing.T) {
	svc, repo := newService(models.User{Email: "t@example.com", Role: models.RoleTourist})
	ctx := context.Background()

	_, err := svc.ApplyForGuide(ctx, "t@example.com", validApplication())
	require.NoError(t, err)
	first, err := repo.GetByEmail(ctx, "t@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRequested, first.Status)
	require.NotNil(t, first.GuideApplication)

	second := GuideApplicationRequest{Title: "Changed", Reason: "Changed", CVLink: "https://other"}
	_, err = svc.ApplyForGuide(ctx, "t@example.com", second)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	after, err := repo.GetByEmail(ctx, "t@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.GuideApplication, after.GuideApplication)
}

func TestApplyForGuideAfterRejectionIsAllowed(t *testing.T) {
	svc, _ := newService(models.User{Email: "t@example.com", Role: models.RoleTourist, Status: models.StatusRejected})

	_, err := svc.ApplyForGuide(context.Background(), "t@example.com", validApplication())
	assert.NoError(t, err)
}

func TestApplyForGuideRequiresAllFields(t *testing.T) {
	svc, _ := newService(models.User{Email: "t@example.com", Role: models.RoleTourist})

	for _, req := range []GuideApplicationRequest{
		{Reason: "r", CVLink: "c"},
		{Title: "t", CVLink: "c"},
		{Title: "t", Reason: "r"},
	} {
		_, err := svc.ApplyForGuide(context.Background(), "t@example.com", req)
		assert.True(t, utils.IsKind(err, utils.KindValidation))
	}
}

func TestDecideApprove(t *testing.T) {
	svc, repo := newService(models.User{Email: "c@example.com", Role: models.RoleTourist, Status: models.StatusRequested})

	_, err := svc.Decide(context.Background(), "c@example.com", ActionApprove)
	require.NoError(t, err)

	u, err := repo.GetByEmail(context.Background(), "c@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleGuide, u.Role)
	assert.Equal(t, models.StatusApproved, u.Status)
	assert.NotNil(t, u.ApprovedAt)
}

func TestDecideReject(t *testing.T) {
	svc, repo := newService(models.User{Email: "c@example.com", Role: models.RoleTourist, Status: models.StatusRequested})

	_, err := svc.Decide(context.Background(), "c@example.com", ActionReject)
	require.NoError(t, err)

	u, err := repo.GetByEmail(context.Background(), "c@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTourist, u.Role)
	assert.Equal(t, models.StatusRejected, u.Status)
	assert.NotNil(t, u.RejectedAt)
}

func TestDecideInvalidActionLeavesRecord(t *testing.T) {
	svc, repo := newService(models.User{Email: "c@example.com", Role: models.RoleTourist, Status: models.StatusRequested})

	_, err := svc.Decide(context.Background(), "c@example.com", "promote")
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	u, err := repo.GetByEmail(context.Background(), "c@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTourist, u.Role)
	assert.Equal(t, models.StatusRequested, u.Status)
	assert.Nil(t, u.ApprovedAt)
	assert.Nil(t, u.RejectedAt)
}

func TestDecideRequiresPendingApplication(t *testing.T) {
	svc, _ := newService(models.User{Email: "c@example.com", Role: models.RoleTourist})

	_, err := svc.Decide(context.Background(), "c@example.com", ActionApprove)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = svc.Decide(context.Background(), "ghost@example.com", ActionApprove)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestListCandidatesAndGuides(t *testing.T) {
	svc, _ := newService(
		models.User{Email: "a@example.com", Role: models.RoleTourist, Status: models.StatusRequested},
		models.User{Email: "b@example.com", Role: models.RoleGuide, Status: models.StatusApproved},
		models.User{Email: "c@example.com", Role: models.RoleUser},
	)

	candidates, err := svc.ListCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "a@example.com", candidates[0].Email)

	guides, err := svc.ListGuides(context.Background())
	require.NoError(t, err)
	require.Len(t, guides, 1)
	assert.Equal(t, "b@example.com", guides[0].Email)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteByID(t *testing.T) {
	svc, repo := newService(models.User{Email: "a@example.com", Role: models.RoleUser})
	u, err := repo.GetByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)

	assert.True(t, utils.IsKind(svc.DeleteByID(context.Background(), "xyz"), utils.KindValidation))
	require.NoError(t, svc.DeleteByID(context.Background(), u.ID.Hex()))
	assert.Equal(t, 0, repo.Len())
	assert.True(t, utils.IsKind(svc.DeleteByID(context.Background(), u.ID.Hex()), utils.KindNotFound))
}

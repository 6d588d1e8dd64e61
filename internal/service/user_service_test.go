package service

import (
	"context"
	"testing"

	"voxa/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	updateRoleFn    func(context.Context, uint, models.Role) error
	listFn          func(context.Context, int, int) ([]models.User, error)
	listRecentFn    func(context.Context, int) ([]models.User, error)
	searchFn        func(context.Context, string, int) ([]models.User, error)
	countFn         func(context.Context) (int64, error)
	countPostsFn    func(context.Context, uint) (int64, error)
	deleteCascadeFn func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdateRole(ctx context.Context, id uint, role models.Role) error {
	return s.updateRoleFn(ctx, id, role)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) ListRecent(ctx context.Context, limit int) ([]models.User, error) {
	return s.listRecentFn(ctx, limit)
}
func (s *userRepoStub) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	return s.searchFn(ctx, query, limit)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *userRepoStub) CountPosts(ctx context.Context, userID uint) (int64, error) {
	return s.countPostsFn(ctx, userID)
}
func (s *userRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteCascadeFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{Name: "Someone"}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateRoleFn:    func(_ context.Context, _ uint, _ models.Role) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		listRecentFn:    func(_ context.Context, _ int) ([]models.User, error) { return nil, nil },
		searchFn:        func(_ context.Context, _ string, _ int) ([]models.User, error) { return nil, nil },
		countFn:         func(_ context.Context) (int64, error) { return 0, nil },
		countPostsFn:    func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		deleteCascadeFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	toggleFn      func(context.Context, uint, uint) (bool, error)
	isFollowingFn func(context.Context, uint, uint) (bool, error)
	followersFn   func(context.Context, uint) ([]models.User, error)
	followingFn   func(context.Context, uint) ([]models.User, error)
}

func (s *followRepoStub) Toggle(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.toggleFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followersFn(ctx, userID)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followingFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		toggleFn:      func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		isFollowingFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		followersFn:   func(_ context.Context, _ uint) ([]models.User, error) { return nil, nil },
		followingFn:   func(_ context.Context, _ uint) ([]models.User, error) { return nil, nil },
	}
}

// --- GetProfile ---

func TestGetProfile_DerivesCountsAndSets(t *testing.T) {
	users := noopUserRepo()
	users.countPostsFn = func(_ context.Context, userID uint) (int64, error) { return 4, nil }

	follows := noopFollowRepo()
	follows.followersFn = func(_ context.Context, _ uint) ([]models.User, error) {
		return []models.User{{Name: "A"}, {Name: "B"}}, nil
	}
	follows.followingFn = func(_ context.Context, _ uint) ([]models.User, error) {
		return []models.User{{Name: "C"}}, nil
	}

	svc := NewUserService(users, follows)
	user, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(4), user.PostsCount)
	assert.Len(t, user.Followers, 2)
	assert.Len(t, user.Following, 1)
}

func TestGetProfile_NotFound(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewUserService(users, noopFollowRepo())
	_, err := svc.GetProfile(context.Background(), 404)
	assert.True(t, models.IsCode(err, "NOT_FOUND"))
}

// --- UpdateProfile ---

func TestUpdateProfile_PatchesOnlyGivenFields(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{Name: "Old Name", Bio: "Old bio", Avatar: "old.png"}, nil
	}
	var updated *models.User
	users.updateFn = func(_ context.Context, u *models.User) error {
		updated = u
		return nil
	}

	svc := NewUserService(users, noopFollowRepo())
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1,
		Bio:    "New bio",
	})
	require.NoError(t, err)

	assert.Equal(t, "Old Name", updated.Name)
	assert.Equal(t, "New bio", updated.Bio)
	assert.Equal(t, "old.png", updated.Avatar)
}

// --- ToggleFollow ---

func TestToggleFollow_SelfRejectedBeforeAnyRead(t *testing.T) {
	users := noopUserRepo()
	read := false
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		read = true
		return &models.User{}, nil
	}

	svc := NewUserService(users, noopFollowRepo())
	_, err := svc.ToggleFollow(context.Background(), 5, 5)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "VALIDATION_ERROR"))
	assert.False(t, read)
}

func TestToggleFollow_TargetMissing(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewUserService(users, noopFollowRepo())
	_, err := svc.ToggleFollow(context.Background(), 5, 404)
	assert.True(t, models.IsCode(err, "NOT_FOUND"))
}

func TestToggleFollow_FlipsState(t *testing.T) {
	follows := noopFollowRepo()
	state := false
	follows.toggleFn = func(_ context.Context, followerID, followeeID uint) (bool, error) {
		assert.Equal(t, uint(5), followerID)
		assert.Equal(t, uint(8), followeeID)
		state = !state
		return state, nil
	}

	svc := NewUserService(noopUserRepo(), follows)

	following, err := svc.ToggleFollow(context.Background(), 5, 8)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = svc.ToggleFollow(context.Background(), 5, 8)
	require.NoError(t, err)
	assert.False(t, following)
}

// --- SearchUsers ---

func TestSearchUsers_EmptyQueryRejected(t *testing.T) {
	svc := NewUserService(noopUserRepo(), noopFollowRepo())
	_, err := svc.SearchUsers(context.Background(), "")
	assert.True(t, models.IsCode(err, "VALIDATION_ERROR"))
}

func TestSearchUsers_EmptyResultIsNotNil(t *testing.T) {
	svc := NewUserService(noopUserRepo(), noopFollowRepo())
	users, err := svc.SearchUsers(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

package service

import (
	"context"
	"testing"

	"voxa/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminService(users *userRepoStub, posts *postRepoStub, comments *commentRepoStub, likes *likeRepoStub, follows *followRepoStub) *AdminService {
	if users == nil {
		users = noopUserRepo()
	}
	if posts == nil {
		posts = noopPostRepo()
	}
	if comments == nil {
		comments = noopCommentRepo()
	}
	if likes == nil {
		likes = noopLikeRepo()
	}
	if follows == nil {
		follows = noopFollowRepo()
	}
	return NewAdminService(users, posts, comments, likes, follows)
}

func TestAdminStats_AggregatesTotals(t *testing.T) {
	users := noopUserRepo()
	users.countFn = func(_ context.Context) (int64, error) { return 10, nil }
	posts := noopPostRepo()
	posts.countAllFn = func(_ context.Context) (int64, error) { return 40, nil }
	posts.listRecentFn = func(_ context.Context, limit int) ([]*models.Post, error) {
		assert.Equal(t, 5, limit)
		return []*models.Post{{Title: "latest"}}, nil
	}
	comments := noopCommentRepo()
	comments.countFn = func(_ context.Context) (int64, error) { return 120, nil }
	likes := noopLikeRepo()
	likes.countFn = func(_ context.Context) (int64, error) { return 300, nil }

	svc := newAdminService(users, posts, comments, likes, nil)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), stats.Stats.TotalUsers)
	assert.Equal(t, int64(40), stats.Stats.TotalPosts)
	assert.Equal(t, int64(120), stats.Stats.TotalComments)
	assert.Equal(t, int64(300), stats.Stats.TotalLikes)
	require.Len(t, stats.RecentActivity.RecentPosts, 1)
	assert.Equal(t, "latest", stats.RecentActivity.RecentPosts[0].Title)
}

func TestAdminListUsers_Pagination(t *testing.T) {
	users := noopUserRepo()
	users.countFn = func(_ context.Context) (int64, error) { return 45, nil }
	users.listFn = func(_ context.Context, limit, offset int) ([]models.User, error) {
		assert.Equal(t, 20, limit)
		assert.Equal(t, 20, offset)
		return []models.User{{Name: "A"}}, nil
	}

	svc := newAdminService(users, nil, nil, nil, nil)
	page, err := svc.ListUsers(context.Background(), 2, 20)
	require.NoError(t, err)

	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, int64(45), page.Total)
	assert.Len(t, page.Users, 1)
}

func TestAdminListPosts_IncludesAllStatuses(t *testing.T) {
	posts := noopPostRepo()
	posts.countAllFn = func(_ context.Context) (int64, error) { return 3, nil }
	listed := false
	posts.listAllFn = func(_ context.Context, limit, offset int) ([]*models.Post, error) {
		listed = true
		return []*models.Post{{Status: models.PostStatusDraft}}, nil
	}

	svc := newAdminService(nil, posts, nil, nil, nil)
	page, err := svc.ListPosts(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, listed)
	assert.Len(t, page.Posts, 1)
}

func TestAdminUserLikes_UnknownUser(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := newAdminService(users, nil, nil, nil, nil)
	_, err := svc.UserLikes(context.Background(), 404)
	assert.True(t, models.IsCode(err, "NOT_FOUND"))
}

func TestAdminUserFollowGraph(t *testing.T) {
	follows := noopFollowRepo()
	follows.followersFn = func(_ context.Context, _ uint) ([]models.User, error) {
		return []models.User{{Name: "A"}}, nil
	}

	svc := newAdminService(nil, nil, nil, nil, follows)
	graph, err := svc.UserFollowGraph(context.Background(), 1)
	require.NoError(t, err)

	assert.Len(t, graph.Followers, 1)
	assert.NotNil(t, graph.Following)
	assert.Empty(t, graph.Following)
}

func TestAdminDeleteUser_SelfRejected(t *testing.T) {
	users := noopUserRepo()
	cascaded := false
	users.deleteCascadeFn = func(_ context.Context, _ uint) error {
		cascaded = true
		return nil
	}

	svc := newAdminService(users, nil, nil, nil, nil)
	err := svc.DeleteUser(context.Background(), 7, 7)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "VALIDATION_ERROR"))
	assert.False(t, cascaded)
}

func TestAdminDeleteUser_Cascades(t *testing.T) {
	users := noopUserRepo()
	cascaded := false
	users.deleteCascadeFn = func(_ context.Context, id uint) error {
		assert.Equal(t, uint(3), id)
		cascaded = true
		return nil
	}

	svc := newAdminService(users, nil, nil, nil, nil)
	require.NoError(t, svc.DeleteUser(context.Background(), 7, 3))
	assert.True(t, cascaded)
}

func TestAdminUpdateRole(t *testing.T) {
	t.Run("Valid Roles", func(t *testing.T) {
		for _, role := range []string{"User", "Admin"} {
			users := noopUserRepo()
			var gotRole models.Role
			users.updateRoleFn = func(_ context.Context, _ uint, r models.Role) error {
				gotRole = r
				return nil
			}

			svc := newAdminService(users, nil, nil, nil, nil)
			_, err := svc.UpdateRole(context.Background(), 1, role)
			require.NoError(t, err)
			assert.Equal(t, models.Role(role), gotRole)
		}
	})

	t.Run("Invalid Role", func(t *testing.T) {
		svc := newAdminService(nil, nil, nil, nil, nil)
		_, err := svc.UpdateRole(context.Background(), 1, "Superuser")
		assert.True(t, models.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("Unknown User", func(t *testing.T) {
		users := noopUserRepo()
		users.updateRoleFn = func(_ context.Context, id uint, _ models.Role) error {
			return models.NewNotFoundError("User", id)
		}

		svc := newAdminService(users, nil, nil, nil, nil)
		_, err := svc.UpdateRole(context.Background(), 404, "Admin")
		assert.True(t, models.IsCode(err, "NOT_FOUND"))
	})
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"voxa/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint, uint) (*models.Post, error)
	listFn           func(context.Context, models.PostFilter, int, int, uint) ([]*models.Post, error)
	countFn          func(context.Context, models.PostFilter) (int64, error)
	listByUserFn     func(context.Context, uint, uint) ([]*models.Post, error)
	listAllFn        func(context.Context, int, int) ([]*models.Post, error)
	listRecentFn     func(context.Context, int) ([]*models.Post, error)
	countAllFn       func(context.Context) (int64, error)
	updateFn         func(context.Context, *models.Post) error
	deleteCascadeFn  func(context.Context, uint) error
	incrementViewsFn func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, filter models.PostFilter, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, filter, limit, offset, currentUserID)
}
func (s *postRepoStub) Count(ctx context.Context, filter models.PostFilter) (int64, error) {
	return s.countFn(ctx, filter)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID, currentUserID uint) ([]*models.Post, error) {
	return s.listByUserFn(ctx, userID, currentUserID)
}
func (s *postRepoStub) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listAllFn(ctx, limit, offset)
}
func (s *postRepoStub) ListRecent(ctx context.Context, limit int) ([]*models.Post, error) {
	return s.listRecentFn(ctx, limit)
}
func (s *postRepoStub) CountAll(ctx context.Context) (int64, error) {
	return s.countAllFn(ctx)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteCascadeFn(ctx, id)
}
func (s *postRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{UserID: 1}, nil
		},
		listFn: func(_ context.Context, _ models.PostFilter, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		countFn:          func(_ context.Context, _ models.PostFilter) (int64, error) { return 0, nil },
		listByUserFn:     func(_ context.Context, _, _ uint) ([]*models.Post, error) { return nil, nil },
		listAllFn:        func(_ context.Context, _, _ int) ([]*models.Post, error) { return nil, nil },
		listRecentFn:     func(_ context.Context, _ int) ([]*models.Post, error) { return nil, nil },
		countAllFn:       func(_ context.Context) (int64, error) { return 0, nil },
		updateFn:         func(_ context.Context, _ *models.Post) error { return nil },
		deleteCascadeFn:  func(_ context.Context, _ uint) error { return nil },
		incrementViewsFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func alwaysAdmin(_ context.Context, _ uint) (bool, error)  { return true, nil }
func neverAdmin(_ context.Context, _ uint) (bool, error)   { return false, nil }
func adminLookupErr(_ context.Context, _ uint) (bool, error) {
	return false, errors.New("admin lookup failed")
}

// --- ListPosts ---

func TestListPosts_PaginationMath(t *testing.T) {
	tests := []struct {
		name          string
		page          int
		pageSize      int
		total         int64
		wantPage      int
		wantSize      int
		wantTotalPage int
	}{
		{"Defaults", 0, 0, 25, 1, 10, 3},
		{"Exact Fit", 2, 10, 20, 2, 10, 2},
		{"Partial Last Page", 1, 10, 21, 1, 10, 3},
		{"Negative Page Clamped", -5, 10, 5, 1, 10, 1},
		{"Oversized Page Size Clamped", 1, 1000, 500, 1, 100, 5},
		{"Empty Result", 1, 10, 0, 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := noopPostRepo()
			var gotLimit, gotOffset int
			repo.countFn = func(_ context.Context, _ models.PostFilter) (int64, error) {
				return tt.total, nil
			}
			repo.listFn = func(_ context.Context, _ models.PostFilter, limit, offset int, _ uint) ([]*models.Post, error) {
				gotLimit, gotOffset = limit, offset
				return []*models.Post{}, nil
			}

			svc := NewPostService(repo, neverAdmin)
			page, err := svc.ListPosts(context.Background(), ListPostsInput{
				Page:     tt.page,
				PageSize: tt.pageSize,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantPage, page.CurrentPage)
			assert.Equal(t, tt.wantTotalPage, page.TotalPages)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.wantSize, gotLimit)
			assert.Equal(t, (tt.wantPage-1)*tt.wantSize, gotOffset)
		})
	}
}

func TestListPosts_PageBeyondLastIsEmpty(t *testing.T) {
	repo := noopPostRepo()
	repo.countFn = func(_ context.Context, _ models.PostFilter) (int64, error) { return 15, nil }
	repo.listFn = func(_ context.Context, _ models.PostFilter, _, offset int, _ uint) ([]*models.Post, error) {
		assert.Equal(t, 90, offset)
		return nil, nil
	}

	svc := NewPostService(repo, neverAdmin)
	page, err := svc.ListPosts(context.Background(), ListPostsInput{Page: 10, PageSize: 10})
	require.NoError(t, err)

	assert.NotNil(t, page.Posts)
	assert.Empty(t, page.Posts)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 10, page.CurrentPage)
}

func TestListPosts_FilterPassedThrough(t *testing.T) {
	repo := noopPostRepo()
	var gotFilter models.PostFilter
	repo.countFn = func(_ context.Context, f models.PostFilter) (int64, error) {
		gotFilter = f
		return 0, nil
	}
	repo.listFn = func(_ context.Context, f models.PostFilter, _, _ int, _ uint) ([]*models.Post, error) {
		assert.Equal(t, gotFilter, f)
		return nil, nil
	}

	svc := NewPostService(repo, neverAdmin)
	filter := models.PostFilter{Search: "gopher", Category: "Technology", Tag: "go", AuthorID: 7}
	_, err := svc.ListPosts(context.Background(), ListPostsInput{Filter: filter})
	require.NoError(t, err)
	assert.Equal(t, filter, gotFilter)
}

// --- GetPost ---

func TestGetPost_IncrementsViews(t *testing.T) {
	repo := noopPostRepo()
	incremented := false
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{Views: 41}, nil
	}
	repo.incrementViewsFn = func(_ context.Context, id uint) error {
		incremented = true
		return nil
	}

	svc := NewPostService(repo, neverAdmin)
	post, err := svc.GetPost(context.Background(), 1, 0)
	require.NoError(t, err)

	assert.True(t, incremented)
	assert.Equal(t, int64(42), post.Views)
}

func TestGetPost_NotFound(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}

	svc := NewPostService(repo, neverAdmin)
	_, err := svc.GetPost(context.Background(), 99, 0)
	assert.True(t, models.IsCode(err, "NOT_FOUND"))
}

// --- CreatePost ---

func TestCreatePost_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreatePostInput
		wantMsg string
	}{
		{"Missing Title", CreatePostInput{Content: "body"}, "Title is required"},
		{"Missing Content", CreatePostInput{Title: "t"}, "Content is required"},
		{"Title Too Long", CreatePostInput{Title: strings.Repeat("t", 301), Content: "body"}, "Title too long"},
		{"Content Too Long", CreatePostInput{Title: "t", Content: strings.Repeat("c", 50001)}, "Content too long"},
		{"Bad Status", CreatePostInput{Title: "t", Content: "body", Status: "archived"}, "Invalid status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPostService(noopPostRepo(), neverAdmin)
			_, err := svc.CreatePost(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, models.IsCode(err, "VALIDATION_ERROR"))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCreatePost_Defaults(t *testing.T) {
	repo := noopPostRepo()
	var created *models.Post
	repo.createFn = func(_ context.Context, post *models.Post) error {
		created = post
		post.ID = 9
		return nil
	}
	fetches := 0
	repo.getByIDFn = func(_ context.Context, postID, _ uint) (*models.Post, error) {
		fetches++
		return &models.Post{ID: postID, User: models.User{ID: 3, Name: "Ada"}}, nil
	}

	svc := NewPostService(repo, neverAdmin)
	got, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:  3,
		Title:   "Hello",
		Content: "World",
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "General", created.Category)
	assert.Equal(t, models.PostStatusPublished, created.Status)
	assert.NotNil(t, created.Tags)
	assert.Empty(t, created.Tags)
	assert.Equal(t, uint(3), created.UserID)

	// The returned post is the single re-read, author included; callers
	// never need a second fetch.
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "Ada", got.User.Name)
}

func TestCreatePost_Draft(t *testing.T) {
	repo := noopPostRepo()
	var created *models.Post
	repo.createFn = func(_ context.Context, post *models.Post) error {
		created = post
		return nil
	}

	svc := NewPostService(repo, neverAdmin)
	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:  3,
		Title:   "Draft",
		Content: "Not yet",
		Status:  models.PostStatusDraft,
		Tags:    models.Tags{"wip"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusDraft, created.Status)
	assert.Equal(t, models.Tags{"wip"}, created.Tags)
}

// --- UpdatePost ---

func TestUpdatePost_OnlyAuthor(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) {
		return &models.Post{UserID: 1, Title: "orig"}, nil
	}

	svc := NewPostService(repo, alwaysAdmin)
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{
		UserID: 2,
		PostID: 1,
		Title:  "hijacked",
	})
	assert.True(t, models.IsCode(err, "FORBIDDEN"))
}

func TestUpdatePost_PatchesOnlyGivenFields(t *testing.T) {
	repo := noopPostRepo()
	existing := &models.Post{
		UserID:   1,
		Title:    "orig title",
		Content:  "orig content",
		Category: "Travel",
		Tags:     models.Tags{"a"},
	}
	repo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) {
		return existing, nil
	}
	var updated *models.Post
	repo.updateFn = func(_ context.Context, post *models.Post) error {
		updated = post
		return nil
	}

	svc := NewPostService(repo, neverAdmin)
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{
		UserID:  1,
		PostID:  1,
		Content: "new content",
	})
	require.NoError(t, err)

	require.NotNil(t, updated)
	assert.Equal(t, "orig title", updated.Title)
	assert.Equal(t, "new content", updated.Content)
	assert.Equal(t, "Travel", updated.Category)
	assert.Equal(t, models.Tags{"a"}, updated.Tags)
}

func TestUpdatePost_ReplacesTagsWhenProvided(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) {
		return &models.Post{UserID: 1, Tags: models.Tags{"old"}}, nil
	}
	var updated *models.Post
	repo.updateFn = func(_ context.Context, post *models.Post) error {
		updated = post
		return nil
	}

	svc := NewPostService(repo, neverAdmin)
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{
		UserID: 1,
		PostID: 1,
		Tags:   models.Tags{},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)
}

// --- DeletePost ---

func TestDeletePost_Author(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) {
		return &models.Post{UserID: 5}, nil
	}
	deleted := false
	repo.deleteCascadeFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}

	svc := NewPostService(repo, neverAdmin)
	require.NoError(t, svc.DeletePost(context.Background(), 1, 5))
	assert.True(t, deleted)
}

func TestDeletePost_AdminOverride(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) {
		return &models.Post{UserID: 5}, nil
	}
	deleted := false
	repo.deleteCascadeFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}

	svc := NewPostService(repo, alwaysAdmin)
	require.NoError(t, svc.DeletePost(context.Background(), 1, 99))
	assert.True(t, deleted)
}

func TestDeletePost_NonAuthorNonAdmin(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) {
		return &models.Post{UserID: 5}, nil
	}

	svc := NewPostService(repo, neverAdmin)
	err := svc.DeletePost(context.Background(), 1, 99)
	assert.True(t, models.IsCode(err, "FORBIDDEN"))
}

func TestDeletePost_AdminLookupError(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) {
		return &models.Post{UserID: 5}, nil
	}

	svc := NewPostService(repo, adminLookupErr)
	err := svc.DeletePost(context.Background(), 1, 99)
	require.Error(t, err)
	assert.False(t, models.IsCode(err, "FORBIDDEN"))
}

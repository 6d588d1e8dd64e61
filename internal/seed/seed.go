// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"voxa/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var (
	categories = []string{
		"General", "Technology", "Travel", "Food", "Lifestyle", "Programming", "Science",
	}

	tagPool = []string{
		"go", "webdev", "tutorial", "opinion", "review", "howto", "backend",
		"frontend", "devops", "cloud", "databases", "career", "productivity",
	}
)

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if err := createComments(db, users, posts); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	if err := createLikes(db, users, posts); err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	if err := createFollows(db, users); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Children before parents to keep FK constraints happy.
	tables := []string{"likes", "comments", "follows", "posts", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count+1)

	admin := models.User{
		Name:     "Admin",
		Email:    "admin@voxa.dev",
		Password: string(hash),
		Role:     models.RoleAdmin,
		Bio:      "Site administrator",
	}
	if err := db.Where(models.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		return nil, err
	}
	users = append(users, admin)

	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		user := models.User{
			Name: name,
			// Suffix keeps emails unique across repeated runs.
			Email:    fmt.Sprintf("%s%d@example.com", strings.ToLower(strings.ReplaceAll(name, " ", ".")), i),
			Password: string(hash),
			Role:     models.RoleUser,
			Bio:      gofakeit.Sentence(8),
			Avatar:   fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		status := models.PostStatusPublished
		if rand.Intn(10) == 0 {
			status = models.PostStatusDraft
		}

		post := models.Post{
			Title:    strings.TrimSuffix(gofakeit.Sentence(6), "."),
			Content:  gofakeit.Paragraph(3, 5, 12, "\n\n"),
			Category: categories[rand.Intn(len(categories))],
			Tags:     pickTags(),
			Status:   status,
			Views:    int64(rand.Intn(500)),
			UserID:   author.ID,
		}
		if rand.Intn(3) == 0 {
			post.FeaturedImage = fmt.Sprintf("https://picsum.photos/seed/%s/800/450", gofakeit.UUID())
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []models.User, posts []models.Post) error {
	for _, post := range posts {
		for i := 0; i < rand.Intn(5); i++ {
			comment := models.Comment{
				Content: gofakeit.Sentence(10),
				UserID:  users[rand.Intn(len(users))].ID,
				PostID:  post.ID,
			}
			if err := db.Create(&comment).Error; err != nil {
				return err
			}

			// Occasional single-level replies.
			for j := 0; j < rand.Intn(3); j++ {
				reply := models.Comment{
					Content:  gofakeit.Sentence(8),
					UserID:   users[rand.Intn(len(users))].ID,
					PostID:   post.ID,
					ParentID: &comment.ID,
				}
				if err := db.Create(&reply).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func createLikes(db *gorm.DB, users []models.User, posts []models.Post) error {
	for _, post := range posts {
		likers := rand.Intn(len(users))
		perm := rand.Perm(len(users))
		for i := 0; i < likers; i++ {
			like := models.Like{
				UserID: users[perm[i]].ID,
				PostID: post.ID,
			}
			if err := db.Exec(
				"INSERT INTO likes (user_id, post_id, created_at) VALUES (?, ?, NOW()) ON CONFLICT (user_id, post_id) DO NOTHING",
				like.UserID, like.PostID,
			).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func createFollows(db *gorm.DB, users []models.User) error {
	for _, user := range users {
		followees := rand.Intn(len(users)/2 + 1)
		perm := rand.Perm(len(users))
		for i := 0; i < followees; i++ {
			target := users[perm[i]]
			if target.ID == user.ID {
				continue
			}
			if err := db.Exec(
				"INSERT INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, NOW()) ON CONFLICT (follower_id, followee_id) DO NOTHING",
				user.ID, target.ID,
			).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func pickTags() models.Tags {
	count := 1 + rand.Intn(4)
	perm := rand.Perm(len(tagPool))
	tags := make(models.Tags, 0, count)
	for i := 0; i < count; i++ {
		tags = append(tags, tagPool[perm[i]])
	}
	return tags
}

// Package seed provides helpers to create demo data for the blog database.
// These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data the seeder creates.
type Options struct {
	Users           int
	Posts           int
	CommentsPerPost int
	Clean           bool
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db}
}

// Run populates the database per the given options. The first user created
// is the admin; everyone else is a reader who leaves comments.
func Run(db *gorm.DB, opts Options) error {
	if opts.Clean {
		if err := clean(db); err != nil {
			return err
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser(i == 0)
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return fmt.Errorf("seed requires at least one user")
	}
	admin := users[0]

	for i := 0; i < opts.Posts; i++ {
		post, err := f.CreatePost(admin)
		if err != nil {
			return err
		}
		for j := 0; j < opts.CommentsPerPost; j++ {
			commenter := users[gofakeit.Number(0, len(users)-1)]
			if _, err := f.CreateComment(commenter, post); err != nil {
				return err
			}
		}
	}

	log.Printf("Seeded %d users, %d posts (%d comments each)", opts.Users, opts.Posts, opts.CommentsPerPost)
	return nil
}

// CreateUser persists a fake user. Seeded accounts all share the password
// "password" so they are usable from the login form.
func (f *Factory) CreateUser(isAdmin bool) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Name:     gofakeit.Name(),
		IsAdmin:  isAdmin,
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a fake post authored by the given user.
func (f *Factory) CreatePost(author *models.User) (*models.BlogPost, error) {
	created := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now())

	post := &models.BlogPost{
		Title:     gofakeit.Sentence(5),
		Subtitle:  gofakeit.Sentence(8),
		Body:      gofakeit.Paragraph(3, 4, 10, "\n\n"),
		ImgURL:    gofakeit.ImageURL(640, 480),
		AuthorID:  author.ID,
		Date:      created.Format(models.PostDateLayout),
		CreatedAt: created,
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a fake comment by the given user on the given post.
func (f *Factory) CreateComment(commenter *models.User, post *models.BlogPost) (*models.Comment, error) {
	comment := &models.Comment{
		Text:        gofakeit.Sentence(12),
		CommenterID: commenter.ID,
		PostID:      post.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func clean(db *gorm.DB) error {
	for _, table := range []string{"comments", "blog_posts", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

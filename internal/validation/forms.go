// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks that an address is plausibly deliverable.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// RegisterForm holds the fields of the registration form.
type RegisterForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Name     string `form:"name"`
}

// Validate checks the registration form.
func (f *RegisterForm) Validate() error {
	if strings.TrimSpace(f.Email) == "" || f.Password == "" || strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("email, password, and name are required")
	}
	return ValidateEmail(f.Email)
}

// LoginForm holds the fields of the login form.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Validate checks the login form.
func (f *LoginForm) Validate() error {
	if strings.TrimSpace(f.Email) == "" || f.Password == "" {
		return fmt.Errorf("email and password are required")
	}
	return ValidateEmail(f.Email)
}

// PostForm holds the editable fields of a blog post. The same form serves
// both the new-post and edit-post pages.
type PostForm struct {
	Title    string `form:"title"`
	Subtitle string `form:"subtitle"`
	ImgURL   string `form:"img_url"`
	Body     string `form:"body"`
}

// Validate checks the post form.
func (f *PostForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" ||
		strings.TrimSpace(f.Subtitle) == "" ||
		strings.TrimSpace(f.ImgURL) == "" ||
		strings.TrimSpace(f.Body) == "" {
		return fmt.Errorf("title, subtitle, image URL, and body are required")
	}
	if len(f.Title) > 250 || len(f.Subtitle) > 250 || len(f.ImgURL) > 250 {
		return fmt.Errorf("title, subtitle, and image URL must not exceed 250 characters")
	}
	return nil
}

// CommentForm holds the single field of the comment form.
type CommentForm struct {
	Text string `form:"text"`
}

// Validate checks the comment form.
func (f *CommentForm) Validate() error {
	if strings.TrimSpace(f.Text) == "" {
		return fmt.Errorf("comment text is required")
	}
	return nil
}

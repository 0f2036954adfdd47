package server

import (
	"time"

	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.Context())
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "index", fiber.Map{
		"Title": "All Posts",
		"Posts": posts,
	})
}

// ShowPost handles GET /post/:id
func (s *Server) ShowPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		if models.IsNotFound(err) {
			return s.renderStatus(c, fiber.StatusNotFound, "Post not found")
		}
		return err
	}

	return s.render(c, fiber.StatusOK, "post", fiber.Map{
		"Title": post.Title,
		"Post":  post,
	})
}

// NewPostPage handles GET /new-post (admin only)
func (s *Server) NewPostPage(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "make-post", fiber.Map{
		"Title":   "New Post",
		"Heading": "New Post",
		"Action":  "/new-post",
		"Form":    &validation.PostForm{},
	})
}

// CreatePost handles POST /new-post (admin only)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	author := s.currentUser(c)

	var form validation.PostForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderPostForm(c, "New Post", "/new-post", &form, "Invalid form submission")
	}
	if err := form.Validate(); err != nil {
		return s.renderPostForm(c, "New Post", "/new-post", &form, err.Error())
	}

	post := &models.BlogPost{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
		AuthorID: author.ID,
		Date:     time.Now().Format(models.PostDateLayout),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		if models.IsValidation(err) {
			return s.renderPostForm(c, "New Post", "/new-post", &form, err.Error())
		}
		return err
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// EditPostPage handles GET /edit-post/:id (admin only)
func (s *Server) EditPostPage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		if models.IsNotFound(err) {
			return s.renderStatus(c, fiber.StatusNotFound, "Post not found")
		}
		return err
	}

	form := &validation.PostForm{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		ImgURL:   post.ImgURL,
		Body:     post.Body,
	}
	return s.renderPostForm(c, "Edit Post", "/edit-post/"+c.Params("id"), form, "")
}

// UpdatePost handles POST /edit-post/:id (admin only). Only the four form
// fields change; id, author, date, and comments stay untouched.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if models.IsNotFound(err) {
			return s.renderStatus(c, fiber.StatusNotFound, "Post not found")
		}
		return err
	}

	action := "/edit-post/" + c.Params("id")

	var form validation.PostForm
	if parseErr := c.BodyParser(&form); parseErr != nil {
		return s.renderPostForm(c, "Edit Post", action, &form, "Invalid form submission")
	}
	if validateErr := form.Validate(); validateErr != nil {
		return s.renderPostForm(c, "Edit Post", action, &form, validateErr.Error())
	}

	post.Title = form.Title
	post.Subtitle = form.Subtitle
	post.ImgURL = form.ImgURL
	post.Body = form.Body

	if updateErr := s.postRepo.Update(ctx, post); updateErr != nil {
		if models.IsValidation(updateErr) {
			return s.renderPostForm(c, "Edit Post", action, &form, updateErr.Error())
		}
		return updateErr
	}

	return c.Redirect("/post/"+c.Params("id"), fiber.StatusSeeOther)
}

// DeletePost handles GET /delete/:id (admin only). Comments on the post are
// removed with it.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postRepo.Delete(c.Context(), id); err != nil {
		if models.IsNotFound(err) {
			return s.renderStatus(c, fiber.StatusNotFound, "Post not found")
		}
		return err
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// About handles GET /about
func (s *Server) About(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "about", fiber.Map{"Title": "About"})
}

// Contact handles GET /contact
func (s *Server) Contact(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "contact", fiber.Map{"Title": "Contact"})
}

// renderPostForm re-renders the shared new/edit post form with an optional notice.
func (s *Server) renderPostForm(c *fiber.Ctx, heading, action string, form *validation.PostForm, flash string) error {
	data := fiber.Map{
		"Title":   heading,
		"Heading": heading,
		"Action":  action,
		"Form":    form,
	}
	if flash != "" {
		data["Flash"] = flash
	}
	return s.render(c, fiber.StatusOK, "make-post", data)
}

package server

import (
	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /post/:id. Commenting requires a logged-in user;
// anonymous submitters are sent to the login page with a notice instead of
// getting an error.
func (s *Server) AddComment(c *fiber.Ctx) error {
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

	commenter := s.currentUser(c)
	if commenter == nil {
		s.setFlash(c, "You need to log in or register in order to leave comments.")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	var form validation.CommentForm
	if parseErr := c.BodyParser(&form); parseErr != nil {
		return s.render(c, fiber.StatusBadRequest, "post", fiber.Map{
			"Title": post.Title,
			"Post":  post,
			"Flash": "Invalid form submission",
		})
	}
	if validateErr := form.Validate(); validateErr != nil {
		return s.render(c, fiber.StatusOK, "post", fiber.Map{
			"Title": post.Title,
			"Post":  post,
			"Flash": validateErr.Error(),
		})
	}

	comment := &models.Comment{
		Text:        form.Text,
		CommenterID: commenter.ID,
		PostID:      post.ID,
	}
	if createErr := s.commentRepo.Create(ctx, comment); createErr != nil {
		return createErr
	}

	return c.Redirect("/post/"+c.Params("id"), fiber.StatusSeeOther)
}

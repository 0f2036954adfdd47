package server

import (
	"inkwell/internal/models"
	"inkwell/internal/session"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// RegisterPage handles GET /register
func (s *Server) RegisterPage(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "register", fiber.Map{
		"Title": "Register",
		"Form":  &validation.RegisterForm{},
	})
}

// Register handles POST /register
func (s *Server) Register(c *fiber.Ctx) error {
	ctx := c.Context()

	var form validation.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return s.render(c, fiber.StatusBadRequest, "register", fiber.Map{
			"Title": "Register",
			"Form":  &form,
			"Flash": "Invalid form submission",
		})
	}
	if err := form.Validate(); err != nil {
		return s.render(c, fiber.StatusOK, "register", fiber.Map{
			"Title": "Register",
			"Form":  &form,
			"Flash": err.Error(),
		})
	}

	existing, err := s.userRepo.GetByEmail(ctx, form.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		s.setFlash(c, "We already have this address on file, please log in.")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	// The first registered account becomes the blog administrator.
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:    form.Email,
		Password: string(hashedPassword),
		Name:     form.Name,
		IsAdmin:  count == 0,
	}
	if createErr := s.userRepo.Create(ctx, user); createErr != nil {
		if models.IsValidation(createErr) {
			// Lost the race against a concurrent registration for the
			// same address; same outcome as the check above.
			s.setFlash(c, "We already have this address on file, please log in.")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return createErr
	}

	return s.establishSession(c, user.ID)
}

// LoginPage handles GET /login
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "login", fiber.Map{
		"Title": "Log In",
		"Form":  &validation.LoginForm{},
	})
}

// Login handles POST /login
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.Context()

	var form validation.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return s.render(c, fiber.StatusBadRequest, "login", fiber.Map{
			"Title": "Log In",
			"Form":  &form,
			"Flash": "Invalid form submission",
		})
	}
	if err := form.Validate(); err != nil {
		return s.render(c, fiber.StatusOK, "login", fiber.Map{
			"Title": "Log In",
			"Form":  &form,
			"Flash": err.Error(),
		})
	}

	user, err := s.userRepo.GetByEmail(ctx, form.Email)
	if err != nil {
		return err
	}
	if user == nil {
		s.setFlash(c, "Unknown user")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); cmpErr != nil {
		s.setFlash(c, "Invalid password")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	return s.establishSession(c, user.ID)
}

// Logout handles GET /logout
func (s *Server) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(session.CookieName); token != "" {
		if err := s.sessions.Revoke(c.Context(), token); err != nil {
			return models.NewInternalError(err)
		}
	}
	s.clearSessionCookie(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// establishSession issues a session token, sets the cookie, and sends the
// user to the post listing.
func (s *Server) establishSession(c *fiber.Ctx, userID uint) error {
	token, expires, err := s.sessions.Issue(userID)
	if err != nil {
		return models.NewInternalError(err)
	}
	s.setSessionCookie(c, token, expires)
	return c.Redirect("/", fiber.StatusSeeOther)
}

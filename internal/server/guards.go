package server

import (
	"context"

	"inkwell/internal/middleware"
	"inkwell/internal/session"

	"github.com/gofiber/fiber/v2"
)

// CurrentUser resolves the session cookie into a user row and stores it in
// the request locals. Any failure along the way (no cookie, bad signature,
// expired, revoked, deleted user) leaves the request anonymous rather than
// failing it.
func (s *Server) CurrentUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		if token == "" {
			return c.Next()
		}

		userID, err := s.sessions.Resolve(c.Context(), token)
		if err != nil {
			return c.Next()
		}

		user, err := s.userRepo.GetByID(c.Context(), userID)
		if err != nil {
			// Stale session for a user that no longer exists.
			return c.Next()
		}

		c.Locals("currentUser", user)
		c.Locals("userID", user.ID)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// LoginRequired redirects anonymous requests to the login page.
func (s *Server) LoginRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s.currentUser(c) == nil {
			s.setFlash(c, "Please log in to continue.")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// AdminRequired gates post management: anonymous requests are silently sent
// back to the post listing, authenticated non-admins get a 403. The decision
// is evaluated fresh on every request.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := s.currentUser(c)
		if user == nil {
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		if !user.IsAdmin {
			return s.renderStatus(c, fiber.StatusForbidden, "You do not have permission to manage posts")
		}
		return c.Next()
	}
}

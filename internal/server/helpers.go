// Package server contains the HTTP handlers and route setup for the blog.
package server

import (
	"errors"
	"net/url"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/session"

	"github.com/gofiber/fiber/v2"
)

// flashCookie carries a one-time notice across a redirect. It is read and
// cleared by the next rendered page.
const flashCookie = "blog_flash"

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// the app's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// currentUser returns the user resolved from the session cookie, or nil for
// an anonymous request. Handlers never fail on a missing identity.
func (s *Server) currentUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals("currentUser").(*models.User); ok {
		return user
	}
	return nil
}

// render executes a view with the ambient page data (current user, pending
// flash notice) merged in.
func (s *Server) render(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = "Blog"
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = s.popFlash(c)
	}
	data["CurrentUser"] = s.currentUser(c)

	c.Status(status)
	return s.renderer.Render(c, name, data)
}

// renderStatus renders the error page for non-2xx outcomes (404, 403, 500).
func (s *Server) renderStatus(c *fiber.Ctx, status int, message string) error {
	return s.render(c, status, "error", fiber.Map{
		"Title":   message,
		"Status":  status,
		"Message": message,
	})
}

// setFlash stores a one-time notice to be shown on the next rendered page.
func (s *Server) setFlash(c *fiber.Ctx, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// popFlash returns the pending notice, if any, and clears it.
func (s *Server) popFlash(c *fiber.Ctx) string {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return ""
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	message, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return message
}

// parseID extracts a route parameter as a positive uint. On failure it
// renders a 404 page and returns errResponseWritten; callers should check:
// if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = s.renderStatus(c, fiber.StatusNotFound, "Page not found")
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// setSessionCookie attaches a freshly issued session token to the response.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSessionCookie removes the session cookie from the client.
func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// errorHandler renders a minimal 500 page for errors that escape a handler.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err.Error())

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound {
		return s.renderStatus(c, fiber.StatusNotFound, "Page not found")
	}
	return s.renderStatus(c, fiber.StatusInternalServerError, "Something went wrong")
}

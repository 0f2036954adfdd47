// Package view renders HTML pages. Handlers depend only on the Renderer
// interface; the template implementation is an external collaborator as far
// as the rest of the application is concerned.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Renderer produces markup for a named view with the given data.
type Renderer interface {
	Render(c *fiber.Ctx, name string, data fiber.Map) error
}

//go:embed templates
var templatesFS embed.FS

var functions = template.FuncMap{
	"avatar": AvatarURL,
}

// TemplateRenderer is the html/template-backed Renderer. Each page template
// is parsed together with the shared base layout at construction time.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

// NewTemplateRenderer parses all embedded page templates.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	pageFiles, err := fs.Glob(templatesFS, "templates/*.page.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, pageFile := range pageFiles {
		name := strings.TrimSuffix(path.Base(pageFile), ".page.html")
		ts, err := template.New(name).Funcs(functions).ParseFS(
			templatesFS,
			"templates/base.layout.html",
			pageFile,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing view %q: %w", name, err)
		}
		pages[name] = ts
	}

	return &TemplateRenderer{pages: pages}, nil
}

// Render executes the named view into the response body.
func (r *TemplateRenderer) Render(c *fiber.Ctx, name string, data fiber.Map) error {
	ts, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}

	// Render to a buffer first so a template error never produces a
	// half-written response.
	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

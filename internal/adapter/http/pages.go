package http

import (
	"bytes"
	"html/template"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// Pages renders the interactive HTML pages (forms, lists, dashboard).
type Pages struct {
	tpl *template.Template
}

func NewPages(tplDir string) (*Pages, error) {
	tpl, err := template.ParseGlob(filepath.Join(tplDir, "pages", "*.html"))
	if err != nil {
		return nil, err
	}
	return &Pages{tpl: tpl}, nil
}

func (p *Pages) Render(c *fiber.Ctx, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := p.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

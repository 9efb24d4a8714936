package usecase

import (
	"bytes"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"cv-builder/internal/domain"

	"golang.org/x/net/publicsuffix"
)

// RenderMode selects the rendering variant.
type RenderMode string

const (
	ModeInteractive RenderMode = "interactive"
	ModePrint       RenderMode = "print"
)

// SocialLink pairs a URL with a short display label for the template.
type SocialLink struct {
	Label string
	URL   string
}

// DocRenderer binds a CV record into the document template. It holds the
// parsed template and stylesheet; Render itself is a pure function of
// record + mode.
type DocRenderer struct {
	tpl *template.Template
	css string
}

// NewDocRenderer parses cv.html from tplDir and inlines style.css so the
// produced document is self-contained.
func NewDocRenderer(tplDir string) (*DocRenderer, error) {
	tpl, err := template.ParseFiles(filepath.Join(tplDir, "cv.html"))
	if err != nil {
		return nil, err
	}
	css := ""
	if b, err := os.ReadFile(filepath.Join(tplDir, "style.css")); err == nil {
		css = string(b)
	}
	return &DocRenderer{tpl: tpl, css: css}, nil
}

type docData struct {
	CV       *domain.CV
	Print    bool
	PhotoURL string
	Links    []SocialLink
	CSS      template.CSS
}

// Render produces the HTML document for a record. Asset references are
// emitted under the public /uploads prefix in both modes; in print mode the
// exporter resolves them to local files before conversion.
func (r *DocRenderer) Render(cv *domain.CV, mode RenderMode) (string, error) {
	data := docData{
		CV:    cv,
		Print: mode == ModePrint,
		Links: socialLinks(cv),
		CSS:   template.CSS(r.css),
	}
	if cv.PhotoPath != "" {
		data.PhotoURL = "/uploads/" + cv.PhotoPath
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func socialLinks(cv *domain.CV) []SocialLink {
	var out []SocialLink
	for _, raw := range []string{cv.Website, cv.LinkedIn, cv.GitHub, cv.Twitter} {
		if raw == "" {
			continue
		}
		out = append(out, SocialLink{Label: shortURLLabel(raw), URL: normalizeURL(raw)})
	}
	return out
}

func normalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// shortURLLabel reduces a link to its eTLD+1 for compact display, falling
// back to the hostname or the raw string when parsing fails.
func shortURLLabel(raw string) string {
	parsed, err := url.Parse(normalizeURL(raw))
	if err != nil {
		return raw
	}
	host := parsed.Hostname()
	if host == "" {
		return raw
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}

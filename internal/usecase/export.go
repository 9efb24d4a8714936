package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cv-builder/internal/domain"
)

// PDFRenderer converts an HTML document into PDF bytes.
type PDFRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// PublicAssetPrefix is the web path the upload directory is served under.
const PublicAssetPrefix = "/uploads/"

// Exporter turns rendered markup into a downloadable PDF, resolving public
// asset references to local files first.
type Exporter struct {
	renderer  PDFRenderer
	uploadDir string
}

func NewExporter(renderer PDFRenderer, uploadDir string) *Exporter {
	return &Exporter{renderer: renderer, uploadDir: uploadDir}
}

// Export resolves asset paths, converts the document and validates the
// result. Conversion failures and malformed output surface as
// domain.ErrRender for the boundary to present.
func (e *Exporter) Export(ctx context.Context, html string) ([]byte, error) {
	resolved := ResolveAssetPaths(html, PublicAssetPrefix, e.uploadDir)

	pdf, err := e.renderer.RenderHTMLToPDF(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}
	if len(pdf) == 0 || !strings.HasPrefix(string(pdf), "%PDF") {
		return nil, fmt.Errorf("%w: invalid PDF output (len=%d)", domain.ErrRender, len(pdf))
	}
	return pdf, nil
}

// ResolveAssetPaths rewrites src attributes rooted at the public prefix to
// absolute file:// paths when the target file exists inside uploadDir.
// References whose target is missing are passed through unresolved; the
// converter then skips embedding them instead of aborting the conversion.
func ResolveAssetPaths(html, publicPrefix, uploadDir string) string {
	marker := `src="` + publicPrefix
	out := strings.Builder{}
	rest := html
	for {
		i := strings.Index(rest, marker)
		if i < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:i])
		rest = rest[i+len(marker):]

		j := strings.Index(rest, `"`)
		if j < 0 {
			out.WriteString(marker)
			continue
		}
		name := rest[:j]
		rest = rest[j:]

		local := filepath.Join(uploadDir, filepath.FromSlash(name))
		absDir, dirErr := filepath.Abs(uploadDir)
		abs, err := filepath.Abs(local)
		if dirErr == nil && err == nil && strings.HasPrefix(abs, absDir+string(filepath.Separator)) {
			if _, statErr := os.Stat(abs); statErr == nil {
				out.WriteString(`src="file://` + filepath.ToSlash(abs))
				continue
			}
		}
		// leave unresolved references as-is
		out.WriteString(marker + name)
	}
	return out.String()
}

// DownloadFilename derives the attachment name from the CV's name field,
// sanitized for filesystem and header safety.
func DownloadFilename(cvName string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(cvName))
	if safe == "" {
		safe = "cv"
	}
	return "CV_" + safe + ".pdf"
}

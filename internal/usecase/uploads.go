package usecase

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedPhotoExts = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

// Uploads stores profile photos inside a fixed directory. Rejected files are
// skipped silently: the surrounding create/update still succeeds with no
// reference set.
type Uploads struct {
	dir string
}

func NewUploads(dir string) *Uploads {
	return &Uploads{dir: dir}
}

// Accept validates and stores one uploaded photo for the given owner/record
// pair. It returns the stored filename, or "" when the file was rejected.
// Stored names are namespaced as <ownerID>_<cvID>.<ext> so uploads from
// different records can never collide; a re-upload for the same record
// overwrites the previous photo.
func (u *Uploads) Accept(file *multipart.FileHeader, ownerID, cvID uuid.UUID) (string, error) {
	if file == nil {
		return "", nil
	}

	ext, ok := photoExt(file.Filename)
	if !ok {
		return "", nil
	}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", err
	}

	name := ownerID.String() + "_" + cvID.String() + "." + ext
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// photoExt sanitizes the client-supplied filename and checks the substring
// after the last dot against the allow-list, case-insensitively. Names
// without a dot are rejected.
func photoExt(filename string) (string, bool) {
	// strip any path components the client may have sent
	base := filename
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	base = strings.ReplaceAll(base, "..", "")

	i := strings.LastIndex(base, ".")
	if i < 0 || i == len(base)-1 {
		return "", false
	}
	ext := strings.ToLower(base[i+1:])
	if !allowedPhotoExts[ext] {
		return "", false
	}
	return ext, true
}

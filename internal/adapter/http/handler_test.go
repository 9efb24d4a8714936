package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cv-builder/internal/domain"
	"cv-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	byEmail map[string]domain.User
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	key := strings.ToLower(u.Email)
	if _, ok := r.byEmail[key]; ok {
		return domain.ErrDuplicateEmail
	}
	r.byEmail[key] = *u
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := u
	return &out, nil
}

type memCVRepo struct {
	records map[uuid.UUID]domain.CV
	order   []uuid.UUID
}

func (r *memCVRepo) Save(_ context.Context, cv *domain.CV) error {
	if _, ok := r.records[cv.ID]; !ok {
		r.order = append(r.order, cv.ID)
	}
	r.records[cv.ID] = *cv
	return nil
}

func (r *memCVRepo) Get(_ context.Context, id uuid.UUID) (*domain.CV, error) {
	cv, ok := r.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cv
	return &out, nil
}

func (r *memCVRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*domain.CV, error) {
	var out []*domain.CV
	for _, id := range r.order {
		if cv, ok := r.records[id]; ok && cv.OwnerID == ownerID {
			c := cv
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memCVRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

type fakePDFRenderer struct {
	out []byte
	err error
}

func (f *fakePDFRenderer) RenderHTMLToPDF(_ context.Context, _ string) ([]byte, error) {
	return f.out, f.err
}

type testEnv struct {
	app       *fiber.App
	cvRepo    *memCVRepo
	uploadDir string
}

func newTestEnv(t *testing.T, pdf usecase.PDFRenderer) *testEnv {
	t.Helper()

	uploadDir := t.TempDir()
	tplDir := "../../../templates"

	docs, err := usecase.NewDocRenderer(tplDir)
	require.NoError(t, err)
	pages, err := NewPages(tplDir)
	require.NoError(t, err)

	cvRepo := &memCVRepo{records: map[uuid.UUID]domain.CV{}}
	h := NewHandler(
		usecase.NewAccounts(&memUserRepo{byEmail: map[string]domain.User{}}),
		usecase.NewCVs(cvRepo),
		usecase.NewUploads(uploadDir),
		docs,
		usecase.NewExporter(pdf, uploadDir),
		NewSessions(),
		pages,
	)

	app := fiber.New()
	Register(app, h, uploadDir)
	return &testEnv{app: app, cvRepo: cvRepo, uploadDir: uploadDir}
}

func (e *testEnv) postForm(t *testing.T, path, cookie string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) postMultipart(t *testing.T, path, cookie string, fields map[string]string, photoName string, photo []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if photoName != "" {
		fw, err := w.CreateFormFile("photo", photoName)
		require.NoError(t, err)
		_, err = fw.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) get(t *testing.T, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// signup registers and logs a user in, returning the session cookie.
func (e *testEnv) signup(t *testing.T, name, email, password string) string {
	t.Helper()
	resp := e.postForm(t, "/register", "", url.Values{
		"name": {name}, "email": {email}, "password": {password},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))

	resp = e.postForm(t, "/login", "", url.Values{
		"email": {email}, "password": {password},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/dashboard", resp.Header.Get("Location"))

	setCookie := resp.Header.Get("Set-Cookie")
	require.NotEmpty(t, setCookie)
	cookie, _, _ := strings.Cut(setCookie, ";")
	return cookie
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestRegisterLoginCreateList(t *testing.T) {
	env := newTestEnv(t, &fakePDFRenderer{out: []byte("%PDF-1.4")})
	cookie := env.signup(t, "Ana", "a@x.com", "pw123")

	resp := env.postMultipart(t, "/generar", cookie, map[string]string{
		"name": "Ana", "profession": "Engineer",
	}, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Ana")

	resp = env.get(t, "/mis-cvs", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	html := body(t, resp)
	assert.Contains(t, html, "Ana")
	assert.Contains(t, html, "Engineer")

	require.Len(t, env.cvRepo.order, 1)
	cv := env.cvRepo.records[env.cvRepo.order[0]]
	assert.Equal(t, "Ana", cv.Name)
	assert.Equal(t, "Engineer", cv.Profession)
	assert.Empty(t, cv.Summary)
	assert.Empty(t, cv.PhotoPath)
}

func TestCreateRequiresMandatoryFields(t *testing.T) {
	env := newTestEnv(t, &fakePDFRenderer{out: []byte("%PDF-1.4")})
	cookie := env.signup(t, "Ana", "a@x.com", "pw123")

	resp := env.postMultipart(t, "/generar", cookie, map[string]string{
		"name": "", "profession": "Engineer",
	}, "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, env.cvRepo.order)
}

func TestDuplicateRegistration(t *testing.T) {
	env := newTestEnv(t, &fakePDFRenderer{out: []byte("%PDF-1.4")})
	env.signup(t, "Ana", "a@x.com", "pw123")

	resp := env.postForm(t, "/register", "", url.Values{
		"name": {"Otra"}, "email": {"a@x.com"}, "password": {"pw456"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body(t, resp), "registrado")
}

func TestInvalidLogin(t *testing.T) {
	env := newTestEnv(t, &fakePDFRenderer{out: []byte("%PDF-1.4")})
	env.signup(t, "Ana", "a@x.com", "pw123")

	resp := env.postForm(t, "/login", "", url.Values{
		"email": {"a@x.com"}, "password": {"wrong"},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUnauthenticatedRedirect(t *testing.T) {
	env := newTestEnv(t, &fakePDFRenderer{out: []byte("%PDF-1.4")})

	for _, path := range []string{"/dashboard", "/mis-cvs", "/generar"} {
		resp := env.get(t, path, "")
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}
}

func TestCrossUserAccessForbidden(t *testing.T) {
	env := newTestEnv(t, &fakePDFRenderer{out: []byte("%PDF-1.4")})
	cookieA := env.signup(t, "Ana", "a@x.com", "pw123")

	resp := env.postMultipart(t, "/generar", cookieA, map[string]string{
		"name": "Ana", "profession": "Engineer",
	}, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, env.cvRepo.order, 1)
	cvID := env.cvRepo.order[0]

	cookieB := env.signup(t, "Bruno", "b@x.com", "pw456")
	for _, path := range []string{
		"/ver-cv/" + cvID.String(),
		"/editar-cv/" + cvID.String(),
		"/eliminar-cv/" + cvID.String(),
		"/exportar-pdf/" + cvID.String(),
	} {
		resp := env.get(t, path, cookieB)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		assert.Contains(t, body(t, resp), "permiso", path)
	}

	// record unchanged
	_, ok := env.cvRepo.records[cvID]
	assert.True(t, ok)
}

func TestDeleteThenDeleteAgain(t *testing.T) {
	env := newTestEnv(t, &fakePDFRenderer{out: []byte("%PDF-1.4")})
	cookie := env.signup(t, "Ana", "a@x.com", "pw123")

	env.postMultipart(t, "/generar", cookie, map[string]string{
		"name": "Ana", "profession": "Engineer",
	}, "", nil)
	require.Len(t, env.cvRepo.order, 1)
	cvID := env.cvRepo.order[0]

	resp := env.get(t, "/eliminar-cv/"+cvID.String(), cookie)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/mis-cvs", resp.Header.Get("Location"))

	resp = env.get(t, "/eliminar-cv/"+cvID.String(), cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPhotoUploadAcceptAndReject(t *testing.T) {
	env := newTestEnv(t, &fakePDFRenderer{out: []byte("%PDF-1.4")})
	cookie := env.signup(t, "Ana", "a@x.com", "pw123")

	// accepted: extension check is case-insensitive
	resp := env.postMultipart(t, "/generar", cookie, map[string]string{
		"name": "Ana", "profession": "Engineer",
	}, "photo.JPG", []byte("jpegdata"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cv := env.cvRepo.records[env.cvRepo.order[0]]
	require.NotEmpty(t, cv.PhotoPath)
	_, err := os.Stat(filepath.Join(env.uploadDir, cv.PhotoPath))
	assert.NoError(t, err)

	// rejected: CV still created, no file stored, no reference set
	resp = env.postMultipart(t, "/generar", cookie, map[string]string{
		"name": "Ana", "profession": "Engineer",
	}, "photo.EXE", []byte("mz"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, env.cvRepo.order, 2)
	cv2 := env.cvRepo.records[env.cvRepo.order[1]]
	assert.Empty(t, cv2.PhotoPath)

	entries, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEditAppliesChanges(t *testing.T) {
	env := newTestEnv(t, &fakePDFRenderer{out: []byte("%PDF-1.4")})
	cookie := env.signup(t, "Ana", "a@x.com", "pw123")

	env.postMultipart(t, "/generar", cookie, map[string]string{
		"name": "Ana", "profession": "Engineer", "summary": "old summary",
	}, "", nil)
	cvID := env.cvRepo.order[0]

	resp := env.postMultipart(t, "/editar-cv/"+cvID.String(), cookie, map[string]string{
		"name": "Ana", "profession": "Architect",
	}, "", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/ver-cv/"+cvID.String(), resp.Header.Get("Location"))

	cv := env.cvRepo.records[cvID]
	assert.Equal(t, "Architect", cv.Profession)
	// absent fields overwrite with empty under the independently-optional policy
	assert.Empty(t, cv.Summary)
}

func TestExportPDF(t *testing.T) {
	env := newTestEnv(t, &fakePDFRenderer{out: []byte("%PDF-1.4 bytes")})
	cookie := env.signup(t, "Ana", "a@x.com", "pw123")

	env.postMultipart(t, "/generar", cookie, map[string]string{
		"name": "Ana", "profession": "Engineer",
	}, "", nil)
	cvID := env.cvRepo.order[0]

	resp := env.get(t, "/exportar-pdf/"+cvID.String(), cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="CV_Ana.pdf"`)

	b := body(t, resp)
	assert.True(t, strings.HasPrefix(b, "%PDF"))
	assert.NotEmpty(t, b)
}

func TestExportPDFRenderFailure(t *testing.T) {
	env := newTestEnv(t, &fakePDFRenderer{err: errors.New("conversion failed")})
	cookie := env.signup(t, "Ana", "a@x.com", "pw123")

	env.postMultipart(t, "/generar", cookie, map[string]string{
		"name": "Ana", "profession": "Engineer",
	}, "", nil)
	cvID := env.cvRepo.order[0]

	resp := env.get(t, "/exportar-pdf/"+cvID.String(), cookie)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body(t, resp), "PDF")
}

func TestLogoutEndsSession(t *testing.T) {
	env := newTestEnv(t, &fakePDFRenderer{out: []byte("%PDF-1.4")})
	cookie := env.signup(t, "Ana", "a@x.com", "pw123")

	resp := env.get(t, "/logout", cookie)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp = env.get(t, "/dashboard", cookie)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

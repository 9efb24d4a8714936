package http

import (
	"errors"
	"log/slog"
	"mime/multipart"

	"cv-builder/internal/domain"
	"cv-builder/internal/model"
	"cv-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	accounts *usecase.Accounts
	cvs      *usecase.CVs
	uploads  *usecase.Uploads
	docs     *usecase.DocRenderer
	exporter *usecase.Exporter
	sessions *Sessions
	pages    *Pages
}

func NewHandler(accounts *usecase.Accounts, cvs *usecase.CVs, uploads *usecase.Uploads,
	docs *usecase.DocRenderer, exporter *usecase.Exporter, sessions *Sessions, pages *Pages) *Handler {
	return &Handler{
		accounts: accounts,
		cvs:      cvs,
		uploads:  uploads,
		docs:     docs,
		exporter: exporter,
		sessions: sessions,
		pages:    pages,
	}
}

func (h *Handler) ShowRegister(c *fiber.Ctx) error {
	return h.pages.Render(c, fiber.StatusOK, "register.html", fiber.Map{"Name": "", "Email": ""})
}

func (h *Handler) Register(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")

	_, err := h.accounts.Register(c.Context(), name, email, password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			return h.pages.Render(c, fiber.StatusConflict, "register.html", fiber.Map{
				"Error": "Ese correo ya está registrado.",
				"Name":  name, "Email": email,
			})
		case errors.Is(err, domain.ErrValidation):
			return h.pages.Render(c, fiber.StatusBadRequest, "register.html", fiber.Map{
				"Error": "Nombre, correo y contraseña son obligatorios.",
				"Name":  name, "Email": email,
			})
		default:
			return h.fail(c, err)
		}
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (h *Handler) ShowLogin(c *fiber.Ctx) error {
	return h.pages.Render(c, fiber.StatusOK, "login.html", fiber.Map{"Email": ""})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.accounts.Authenticate(c.Context(), email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return h.pages.Render(c, fiber.StatusUnauthorized, "login.html", fiber.Map{
				"Error": "Correo o contraseña incorrectos.",
				"Email": email,
			})
		}
		return h.fail(c, err)
	}

	if err := h.sessions.Establish(c, user.ID); err != nil {
		return h.fail(c, err)
	}
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.End(c); err != nil {
		return h.fail(c, err)
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (h *Handler) Dashboard(c *fiber.Ctx) error {
	return h.pages.Render(c, fiber.StatusOK, "dashboard.html", fiber.Map{})
}

func (h *Handler) ShowCreate(c *fiber.Ctx) error {
	return h.pages.Render(c, fiber.StatusOK, "cv_form.html", fiber.Map{
		"Action": "/generar",
		"CV":     &domain.CV{},
	})
}

func (h *Handler) Create(c *fiber.Ctx) error {
	ownerID := authedUser(c)

	var form model.CVForm
	if err := c.BodyParser(&form); err != nil {
		return h.fail(c, err)
	}

	cv, err := h.cvs.Create(c.Context(), ownerID, form, "")
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return h.pages.Render(c, fiber.StatusBadRequest, "cv_form.html", fiber.Map{
				"Action": "/generar",
				"Error":  "Nombre y profesión son obligatorios.",
				"CV":     formAsCV(form),
			})
		}
		return h.fail(c, err)
	}

	// optional photo; rejected files are skipped and the CV stays photo-less
	if photo, err := h.acceptPhoto(c, ownerID, cv.ID); err != nil {
		return h.fail(c, err)
	} else if photo != "" {
		if err := h.cvs.AttachPhoto(c.Context(), cv.ID, ownerID, photo); err != nil {
			return h.fail(c, err)
		}
		cv.PhotoPath = photo
	}

	return h.renderCV(c, cv)
}

func (h *Handler) List(c *fiber.Ctx) error {
	cvs, err := h.cvs.ListByOwner(c.Context(), authedUser(c))
	if err != nil {
		return h.fail(c, err)
	}
	return h.pages.Render(c, fiber.StatusOK, "cv_list.html", fiber.Map{"CVs": cvs})
}

func (h *Handler) View(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("CV no encontrado.")
	}
	cv, err := h.cvs.GetForOwner(c.Context(), id, authedUser(c))
	if err != nil {
		return h.fail(c, err)
	}
	return h.renderCV(c, cv)
}

func (h *Handler) ShowEdit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("CV no encontrado.")
	}
	cv, err := h.cvs.GetForOwner(c.Context(), id, authedUser(c))
	if err != nil {
		return h.fail(c, err)
	}
	return h.pages.Render(c, fiber.StatusOK, "cv_form.html", fiber.Map{
		"Action": "/editar-cv/" + cv.ID.String(),
		"CV":     cv,
	})
}

func (h *Handler) Edit(c *fiber.Ctx) error {
	ownerID := authedUser(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("CV no encontrado.")
	}

	var form model.CVForm
	if err := c.BodyParser(&form); err != nil {
		return h.fail(c, err)
	}

	photo, err := h.acceptPhoto(c, ownerID, id)
	if err != nil {
		return h.fail(c, err)
	}

	cv, err := h.cvs.Update(c.Context(), id, ownerID, form, photo)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return h.pages.Render(c, fiber.StatusBadRequest, "cv_form.html", fiber.Map{
				"Action": "/editar-cv/" + id.String(),
				"Error":  "Nombre y profesión son obligatorios.",
				"CV":     formAsCV(form),
			})
		}
		return h.fail(c, err)
	}
	return c.Redirect("/ver-cv/"+cv.ID.String(), fiber.StatusSeeOther)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("CV no encontrado.")
	}
	if err := h.cvs.Delete(c.Context(), id, authedUser(c)); err != nil {
		return h.fail(c, err)
	}
	return c.Redirect("/mis-cvs", fiber.StatusSeeOther)
}

func (h *Handler) ExportPDF(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("CV no encontrado.")
	}
	cv, err := h.cvs.GetForOwner(c.Context(), id, authedUser(c))
	if err != nil {
		return h.fail(c, err)
	}

	html, err := h.docs.Render(cv, usecase.ModePrint)
	if err != nil {
		return h.fail(c, err)
	}
	pdf, err := h.exporter.Export(c.Context(), html)
	if err != nil {
		return h.fail(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+usecase.DownloadFilename(cv.Name)+`"`)
	return c.Send(pdf)
}

// acceptPhoto pulls the optional photo field off a multipart request.
// A missing field is not an error; a rejected file yields "".
func (h *Handler) acceptPhoto(c *fiber.Ctx, ownerID, cvID uuid.UUID) (string, error) {
	var file *multipart.FileHeader
	if f, err := c.FormFile("photo"); err == nil {
		file = f
	}
	if file == nil {
		return "", nil
	}
	return h.uploads.Accept(file, ownerID, cvID)
}

func (h *Handler) renderCV(c *fiber.Ctx, cv *domain.CV) error {
	html, err := h.docs.Render(cv, usecase.ModeInteractive)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// fail maps domain errors to user-facing responses. Nothing here crashes the
// process; unexpected store failures become a generic 500.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).SendString("No tienes permiso para acceder a este CV.")
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).SendString("CV no encontrado.")
	case errors.Is(err, domain.ErrRender):
		slog.Error("pdf export failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("No se pudo generar el PDF.")
	default:
		slog.Error("request failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error interno.")
	}
}

// formAsCV rebuilds a record from a rejected form so the re-displayed page
// keeps what the user typed.
func formAsCV(form model.CVForm) *domain.CV {
	var cv domain.CV
	form.Apply(&cv)
	return &cv
}

package http

import "github.com/gofiber/fiber/v2"

// Register wires the full route table onto the app.
func Register(app *fiber.App, h *Handler, uploadDir string) {
	app.Get("/register", h.ShowRegister)
	app.Post("/register", h.Register)
	app.Get("/login", h.ShowLogin)
	app.Post("/login", h.Login)

	app.Static("/uploads", uploadDir)

	auth := h.sessions.RequireAuth
	app.Get("/logout", auth, h.Logout)
	app.Get("/dashboard", auth, h.Dashboard)
	app.Get("/generar", auth, h.ShowCreate)
	app.Post("/generar", auth, h.Create)
	app.Get("/mis-cvs", auth, h.List)
	app.Get("/ver-cv/:id", auth, h.View)
	app.Get("/editar-cv/:id", auth, h.ShowEdit)
	app.Post("/editar-cv/:id", auth, h.Edit)
	app.Get("/eliminar-cv/:id", auth, h.Delete)
	app.Get("/exportar-pdf/:id", auth, h.ExportPDF)
}

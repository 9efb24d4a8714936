package main

import (
	"context"
	"log"

	httpadapter "cv-builder/internal/adapter/http"
	repo "cv-builder/internal/adapter/repository"
	"cv-builder/internal/infrastructure/migration"
	"cv-builder/internal/usecase"
	"cv-builder/pkg/config"
	infra "cv-builder/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer pool.Close()

	if err := migration.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	docs, err := usecase.NewDocRenderer(cfg.TemplatesDir)
	if err != nil {
		log.Fatalf("document templates: %v", err)
	}
	pages, err := httpadapter.NewPages(cfg.TemplatesDir)
	if err != nil {
		log.Fatalf("page templates: %v", err)
	}

	accounts := usecase.NewAccounts(repo.NewUserRepo(pool))
	cvs := usecase.NewCVs(repo.NewCVRepo(pool))
	uploads := usecase.NewUploads(cfg.UploadDir)
	exporter := usecase.NewExporter(infra.NewChromedpRenderer(cfg.ChromePath), cfg.UploadDir)
	sessions := httpadapter.NewSessions()

	h := httpadapter.NewHandler(accounts, cvs, uploads, docs, exporter, sessions, pages)

	app := fiber.New()
	httpadapter.Register(app, h, cfg.UploadDir)

	log.Printf("HTTP server listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/bikeshare-dashboard/internal/api/http"
	"github.com/i474232898/bikeshare-dashboard/internal/config"
	"github.com/i474232898/bikeshare-dashboard/internal/dashboard"
	"github.com/i474232898/bikeshare-dashboard/internal/render"
	"github.com/i474232898/bikeshare-dashboard/internal/rental"
	"github.com/i474232898/bikeshare-dashboard/internal/rental/sources"
	"github.com/i474232898/bikeshare-dashboard/internal/scheduler"
	"github.com/i474232898/bikeshare-dashboard/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for remote dataset downloads.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	src, err := newSource(cfg, httpClient)
	if err != nil {
		log.Fatalf("failed to configure dataset source: %v", err)
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*cfg.HTTPTimeout)
	records, err := src.Load(loadCtx)
	cancelLoad()
	if err != nil {
		log.Fatalf("failed to load dataset from %s: %v", src.Name(), err)
	}
	log.Printf("INFO: loaded %d records from %s", len(records), src.Name())

	recordStore := store.NewRecordStore(records)
	ctrl := dashboard.NewController(recordStore)

	// Initial view covers the whole dataset.
	if lo, hi, err := recordStore.Bounds(); err == nil {
		if _, err := ctrl.Update(context.Background(), lo, hi); err != nil {
			log.Printf("ERROR: initial dashboard failed: %v", err)
		}
	} else {
		log.Printf("WARN: dataset is empty: %v", err)
	}

	rendererFor := func(f render.Format) render.Renderer {
		return render.NewGoChart(f, cfg.ChartWidth, cfg.ChartHeight)
	}

	// Scheduler that periodically exports the current charts.
	sched := scheduler.New(ctrl, recordStore.Bounds, rendererFor(render.FormatPNG), render.FormatPNG, cfg.ExportDir, cfg.ExportInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "bikeshare-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "bikeshare-dashboard",
			"state":   ctrl.State().String(),
			"records": recordStore.Len(),
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Store:      recordStore,
		Controller: ctrl,
		Renderer:   rendererFor,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

func newSource(cfg *config.AppConfig, client *http.Client) (rental.Source, error) {
	switch cfg.DatasetSource {
	case config.SourceCSV:
		return sources.NewCSVSource(cfg.DatasetPath, cfg.LoadPolicy()), nil
	case config.SourceHTTP:
		return sources.NewHTTPSource(client, cfg.DatasetURL, cfg.LoadPolicy()), nil
	case config.SourceSQLite:
		return sources.NewSQLiteSource(cfg.SQLiteDBPath, cfg.LoadPolicy()), nil
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.DatasetSource)
	}
}
